// Package reconcile 实现费用对账引擎：缴费周期规范化、缴费记录与周期的匹配、
// 当月/上月缴费状态判定以及仪表盘汇总。所有函数都是纯函数，参考时间一律
// 通过参数显式传入，不在内部读取系统时钟。
package reconcile

import (
	"errors"
	"time"
)

// ErrInvalidPeriod 表示无法解析的缴费周期输入
var ErrInvalidPeriod = errors.New("缴费周期格式无效")

// Normalize 将任意时间截断到所在月的第一天零点，即该月的周期键。
// 对已规范化的值再次调用返回其自身（幂等）。
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParsePeriod 解析周期输入并返回规范化的月键。
// 空串默认为 now 所在月；支持 "YYYY-MM"、"YYYY-MM-DD" 以及 RFC3339 格式。
func ParsePeriod(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return Normalize(now), nil
	}
	for _, layout := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return Normalize(t), nil
		}
	}
	return time.Time{}, ErrInvalidPeriod
}

// MonthInterval 返回月键对应的左闭右开区间 [key, key+1个月)
func MonthInterval(monthKey time.Time) (time.Time, time.Time) {
	start := Normalize(monthKey)
	return start, start.AddDate(0, 1, 0)
}

// PreviousMonth 返回上一个月的月键（自动处理1月→前一年12月的跨年）
func PreviousMonth(monthKey time.Time) time.Time {
	return Normalize(monthKey).AddDate(0, -1, 0)
}

// LastDayOfMonth 返回该月最后一天的零点
func LastDayOfMonth(monthKey time.Time) time.Time {
	_, end := MonthInterval(monthKey)
	return end.AddDate(0, 0, -1)
}

// within 判断 t 是否落在左闭右开区间 [start, end) 内
func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
