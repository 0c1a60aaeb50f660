package reconcile

import (
	"testing"
	"time"

	"bluemoon-fee-service/internal/domain/models"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

// TestRefOfCovers 测试周期归属判定
func TestRefOfCovers(t *testing.T) {
	march := date(2024, 3, 1)

	tests := []struct {
		name    string
		payment models.Payment
		month   time.Time
		want    bool
	}{
		{
			"带period且月份一致",
			models.Payment{Period: ptrTime(date(2024, 3, 1)), PaymentDate: date(2024, 4, 2)},
			march, true,
		},
		{
			"带period未规范化也能匹配",
			models.Payment{Period: ptrTime(date(2024, 3, 18))},
			march, true,
		},
		{
			"带period但月份不同",
			models.Payment{Period: ptrTime(date(2024, 2, 1))},
			march, false,
		},
		{
			"历史数据按收款日期匹配",
			models.Payment{PaymentDate: date(2024, 3, 25)},
			march, true,
		},
		{
			"历史数据收款日期在月外",
			models.Payment{PaymentDate: date(2024, 4, 1)},
			march, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefOf(&tt.payment).Covers(tt.month)
			if got != tt.want {
				t.Errorf("Covers = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

// TestFindPaymentForPeriod 测试缴费记录匹配
func TestFindPaymentForPeriod(t *testing.T) {
	march := date(2024, 3, 1)

	t.Run("按period匹配", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 1}, FeeID: 10, Period: ptrTime(date(2024, 2, 1))},
			{BaseModel: models.BaseModel{ID: 2}, FeeID: 10, Period: ptrTime(date(2024, 3, 1))},
		}
		got := FindPaymentForPeriod(payments, 10, march)
		if got == nil || got.ID != 2 {
			t.Errorf("期望匹配 ID=2 的记录, got %v", got)
		}
	})

	t.Run("历史数据按paymentDate回退匹配", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 3}, FeeID: 10, PaymentDate: date(2024, 3, 12)},
		}
		got := FindPaymentForPeriod(payments, 10, march)
		if got == nil || got.ID != 3 {
			t.Errorf("期望回退匹配 ID=3 的记录, got %v", got)
		}
	})

	t.Run("带period的记录优先于历史回退", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 4}, FeeID: 10, PaymentDate: date(2024, 3, 5)},
			{BaseModel: models.BaseModel{ID: 5}, FeeID: 10, Period: ptrTime(date(2024, 3, 1)), PaymentDate: date(2024, 4, 2)},
		}
		got := FindPaymentForPeriod(payments, 10, march)
		if got == nil || got.ID != 5 {
			t.Errorf("期望优先匹配带period的 ID=5, got %v", got)
		}
	})

	t.Run("不匹配其他费用项", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 6}, FeeID: 99, Period: ptrTime(march)},
		}
		if got := FindPaymentForPeriod(payments, 10, march); got != nil {
			t.Errorf("期望无匹配, got ID=%d", got.ID)
		}
	})

	t.Run("无任何记录", func(t *testing.T) {
		if got := FindPaymentForPeriod(nil, 10, march); got != nil {
			t.Errorf("期望 nil, got %v", got)
		}
	})
}
