package reconcile

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestNormalize 测试周期规范化
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"月中带时间", time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC), date(2024, 3, 1)},
		{"月初", date(2024, 3, 1), date(2024, 3, 1)},
		{"月末", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), date(2024, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%v) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent 规范化应当幂等：对已规范化的值再规范化返回自身
func TestNormalizeIdempotent(t *testing.T) {
	key := Normalize(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	if !Normalize(key).Equal(key) {
		t.Errorf("Normalize 不幂等: Normalize(%v) = %v", key, Normalize(key))
	}
}

// TestParsePeriod 测试周期解析
func TestParsePeriod(t *testing.T) {
	now := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"YYYY-MM格式", "2024-03", date(2024, 3, 1), false},
		{"完整日期", "2024-03-15", date(2024, 3, 1), false},
		{"空串默认当前月", "", date(2024, 5, 1), false},
		{"乱码", "not-a-period", time.Time{}, true},
		{"只有年份", "2024", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input, now)
			if tt.wantErr {
				if err != ErrInvalidPeriod {
					t.Errorf("ParsePeriod(%q) err = %v, 期望 ErrInvalidPeriod", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod(%q) 意外错误: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePeriod(%q) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestParsePeriodAgreesWithNormalize "2024-03" 与 2024年3月15日应规范化到同一个月键
func TestParsePeriodAgreesWithNormalize(t *testing.T) {
	now := date(2024, 5, 1)
	fromString, err := ParsePeriod("2024-03", now)
	if err != nil {
		t.Fatalf("ParsePeriod 意外错误: %v", err)
	}
	fromDate := Normalize(date(2024, 3, 15))
	if !fromString.Equal(fromDate) {
		t.Errorf("字符串与日期规范化结果不一致: %v vs %v", fromString, fromDate)
	}
}

// TestMonthInterval 月区间应为左闭右开
func TestMonthInterval(t *testing.T) {
	start, end := MonthInterval(date(2024, 1, 1))
	if !start.Equal(date(2024, 1, 1)) || !end.Equal(date(2024, 2, 1)) {
		t.Errorf("MonthInterval = [%v, %v), 期望 [2024-01-01, 2024-02-01)", start, end)
	}

	// 12月区间跨年
	start, end = MonthInterval(date(2023, 12, 5))
	if !start.Equal(date(2023, 12, 1)) || !end.Equal(date(2024, 1, 1)) {
		t.Errorf("12月区间 = [%v, %v), 期望 [2023-12-01, 2024-01-01)", start, end)
	}
}

// TestPreviousMonth 测试上月月键，包括1月→前一年12月的跨年
func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"普通月份", date(2024, 3, 1), date(2024, 2, 1)},
		{"1月跨年", date(2024, 1, 15), date(2023, 12, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviousMonth(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("PreviousMonth(%v) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestLastDayOfMonth 测试月末日期，包括闰年2月
func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"闰年2月", date(2024, 2, 1), date(2024, 2, 29)},
		{"平年2月", date(2023, 2, 1), date(2023, 2, 28)},
		{"31天的月份", date(2024, 1, 1), date(2024, 1, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastDayOfMonth(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("LastDayOfMonth(%v) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}
