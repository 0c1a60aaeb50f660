package reconcile

import (
	"testing"

	"bluemoon-fee-service/internal/domain/models"
)

// TestClassify 测试费用项双月对账
func TestClassify(t *testing.T) {
	// 参考日期 2024-03-15，维修基金自 2024-01-01 起生效
	reference := date(2024, 3, 15)
	fee := models.Fee{
		BaseModel: models.BaseModel{ID: 1},
		Name:      "维修基金",
		FeeType:   models.FeeTypeMaintenance,
		Amount:    50000,
		StartDate: date(2024, 1, 1),
	}

	t.Run("两月均无缴费", func(t *testing.T) {
		got := Classify(fee, nil, reference)
		if got.CurrentMonthStatus != StatusPending {
			t.Errorf("当月状态 = %s, 期望 pending", got.CurrentMonthStatus)
		}
		if got.LastMonthStatus != StatusOverdue {
			t.Errorf("上月状态 = %s, 期望 overdue", got.LastMonthStatus)
		}
	})

	t.Run("上月已缴", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 7}, FeeID: 1, Period: ptrTime(date(2024, 2, 1))},
		}
		got := Classify(fee, payments, reference)
		if got.LastMonthStatus != StatusPaid {
			t.Errorf("上月状态 = %s, 期望 paid", got.LastMonthStatus)
		}
		if got.LastMonthPayment == nil || got.LastMonthPayment.ID != 7 {
			t.Errorf("上月缴费记录未返回")
		}
		if got.CurrentMonthStatus != StatusPending {
			t.Errorf("当月状态 = %s, 期望 pending", got.CurrentMonthStatus)
		}
	})

	t.Run("当月已缴", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 8}, FeeID: 1, Period: ptrTime(date(2024, 3, 1))},
		}
		got := Classify(fee, payments, reference)
		if got.CurrentMonthStatus != StatusPaid {
			t.Errorf("当月状态 = %s, 期望 paid", got.CurrentMonthStatus)
		}
	})

	t.Run("当月永不判为overdue", func(t *testing.T) {
		// 即使参考日期已到月末，当月无缴费也只是 pending
		got := Classify(fee, nil, date(2024, 3, 31))
		if got.CurrentMonthStatus == StatusOverdue {
			t.Errorf("当月不应判为 overdue")
		}
	})

	t.Run("上月费用项尚未生效", func(t *testing.T) {
		newFee := fee
		newFee.StartDate = date(2024, 3, 1)
		got := Classify(newFee, nil, reference)
		if got.LastMonthStatus != StatusNotApplicable {
			t.Errorf("上月状态 = %s, 期望 not_applicable", got.LastMonthStatus)
		}
	})

	t.Run("上月月中生效仍判overdue", func(t *testing.T) {
		midFee := fee
		midFee.StartDate = date(2024, 2, 20)
		got := Classify(midFee, nil, reference)
		if got.LastMonthStatus != StatusOverdue {
			t.Errorf("上月状态 = %s, 期望 overdue", got.LastMonthStatus)
		}
	})

	t.Run("1月参考日期跨年取上年12月", func(t *testing.T) {
		payments := []models.Payment{
			{BaseModel: models.BaseModel{ID: 9}, FeeID: 1, Period: ptrTime(date(2023, 12, 1))},
		}
		oldFee := fee
		oldFee.StartDate = date(2023, 1, 1)
		got := Classify(oldFee, payments, date(2024, 1, 10))
		if got.LastMonthStatus != StatusPaid {
			t.Errorf("跨年上月状态 = %s, 期望 paid", got.LastMonthStatus)
		}
	})
}

// TestClassifyAll 测试批量对账
func TestClassifyAll(t *testing.T) {
	t.Run("无启用费用项返回空列表", func(t *testing.T) {
		got := ClassifyAll(nil, nil, date(2024, 3, 15))
		if got == nil || len(got) != 0 {
			t.Errorf("期望空列表, got %v", got)
		}
	})

	t.Run("逐项判定互不影响", func(t *testing.T) {
		fees := []models.Fee{
			{BaseModel: models.BaseModel{ID: 1}, Name: "管理费", StartDate: date(2024, 1, 1)},
			{BaseModel: models.BaseModel{ID: 2}, Name: "停车费", StartDate: date(2024, 1, 1)},
		}
		payments := []models.Payment{
			{FeeID: 1, Period: ptrTime(date(2024, 3, 1))},
		}
		got := ClassifyAll(fees, payments, date(2024, 3, 15))
		if len(got) != 2 {
			t.Fatalf("期望2条结果, got %d", len(got))
		}
		if got[0].CurrentMonthStatus != StatusPaid {
			t.Errorf("管理费当月状态 = %s, 期望 paid", got[0].CurrentMonthStatus)
		}
		if got[1].CurrentMonthStatus != StatusPending {
			t.Errorf("停车费当月状态 = %s, 期望 pending", got[1].CurrentMonthStatus)
		}
	})
}

// TestCanModify refunded 为终态
func TestCanModify(t *testing.T) {
	if CanModify(models.PaymentStatusRefunded) {
		t.Errorf("refunded 状态不应允许修改")
	}
	for _, s := range []string{models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusOverdue} {
		if !CanModify(s) {
			t.Errorf("状态 %s 应允许修改", s)
		}
	}
}

// TestDuplicateInterval 重复检查区间即自然月区间
func TestDuplicateInterval(t *testing.T) {
	start, end := DuplicateInterval(date(2024, 3, 1))
	if !start.Equal(date(2024, 3, 1)) || !end.Equal(date(2024, 4, 1)) {
		t.Errorf("DuplicateInterval = [%v, %v), 期望 [2024-03-01, 2024-04-01)", start, end)
	}
}
