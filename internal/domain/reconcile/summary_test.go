package reconcile

import (
	"testing"

	"bluemoon-fee-service/internal/domain/models"
)

// TestSummarizeStatus 测试缴费状态汇总
func TestSummarizeStatus(t *testing.T) {
	now := date(2024, 3, 15)

	t.Run("三类状态分布", func(t *testing.T) {
		payments := []models.Payment{
			// 待缴费，3天后到期 → dueSoon
			{Status: models.PaymentStatusPending, DueDate: ptrTime(date(2024, 3, 18))},
			// 待缴费，10天前已过期 → overdue
			{Status: models.PaymentStatusPending, DueDate: ptrTime(date(2024, 3, 5))},
		}
		got := SummarizeStatus(payments, now, false)
		want := StatusSummary{Paid: 0, DueSoon: 1, Overdue: 1}
		if got != want {
			t.Errorf("SummarizeStatus = %+v, 期望 %+v", got, want)
		}
	})

	t.Run("第7天到期计入dueSoon", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPending, DueDate: ptrTime(date(2024, 3, 22))},
		}
		got := SummarizeStatus(payments, now, false)
		if got.DueSoon != 1 {
			t.Errorf("第7天到期应计入 dueSoon, got %+v", got)
		}
	})

	t.Run("第8天到期不计入dueSoon", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPending, DueDate: ptrTime(date(2024, 3, 23))},
		}
		got := SummarizeStatus(payments, now, false)
		if got.DueSoon != 0 || got.Overdue != 0 {
			t.Errorf("第8天到期不应计入任何一类, got %+v", got)
		}
	})

	t.Run("无截止日期的待缴费不计入", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPending},
		}
		got := SummarizeStatus(payments, now, false)
		if got != (StatusSummary{}) {
			t.Errorf("期望全零, got %+v", got)
		}
	})

	t.Run("显式overdue记录计入overdue", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusOverdue, DueDate: ptrTime(date(2024, 2, 10))},
		}
		got := SummarizeStatus(payments, now, false)
		if got.Overdue != 1 {
			t.Errorf("显式 overdue 应计入, got %+v", got)
		}
	})

	t.Run("仅当月时按日期过滤", func(t *testing.T) {
		payments := []models.Payment{
			// 当月已缴
			{Status: models.PaymentStatusPaid, PaymentDate: date(2024, 3, 10)},
			// 上月已缴，不计入
			{Status: models.PaymentStatusPaid, PaymentDate: date(2024, 2, 10)},
			// 上月到期的待缴费，不计入
			{Status: models.PaymentStatusPending, DueDate: ptrTime(date(2024, 2, 28))},
		}
		got := SummarizeStatus(payments, now, true)
		want := StatusSummary{Paid: 1}
		if got != want {
			t.Errorf("SummarizeStatus = %+v, 期望 %+v", got, want)
		}
	})
}

// TestSummarizeFeeRevenue 测试按费用项汇总收入
func TestSummarizeFeeRevenue(t *testing.T) {
	now := date(2024, 3, 15)
	maintenance := &models.Fee{BaseModel: models.BaseModel{ID: 1}, Name: "维修基金"}
	parking := &models.Fee{BaseModel: models.BaseModel{ID: 2}, Name: "停车费"}

	t.Run("同名费用项金额累加", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPaid, Fee: maintenance, Amount: 100000, PaymentDate: date(2024, 3, 5)},
			{Status: models.PaymentStatusPaid, Fee: maintenance, Amount: 50000, PaymentDate: date(2024, 3, 10)},
			{Status: models.PaymentStatusPaid, Fee: parking, Amount: 20000, PaymentDate: date(2024, 3, 12)},
		}
		got := SummarizeFeeRevenue(payments, now, false)
		if got["维修基金"] != 150000 {
			t.Errorf("维修基金 = %v, 期望 150000", got["维修基金"])
		}
		if got["停车费"] != 20000 {
			t.Errorf("停车费 = %v, 期望 20000", got["停车费"])
		}
	})

	t.Run("非paid状态不计入", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPending, Fee: maintenance, Amount: 100000, PaymentDate: date(2024, 3, 5)},
			{Status: models.PaymentStatusRefunded, Fee: maintenance, Amount: 100000, PaymentDate: date(2024, 3, 6)},
		}
		got := SummarizeFeeRevenue(payments, now, false)
		if len(got) != 0 {
			t.Errorf("期望空映射, got %v", got)
		}
	})

	t.Run("未加载Fee关联的记录跳过", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPaid, Amount: 100000, PaymentDate: date(2024, 3, 5)},
		}
		got := SummarizeFeeRevenue(payments, now, false)
		if len(got) != 0 {
			t.Errorf("期望空映射, got %v", got)
		}
	})

	t.Run("仅当月按paymentDate过滤", func(t *testing.T) {
		payments := []models.Payment{
			{Status: models.PaymentStatusPaid, Fee: maintenance, Amount: 100000, PaymentDate: date(2024, 3, 5)},
			{Status: models.PaymentStatusPaid, Fee: maintenance, Amount: 80000, PaymentDate: date(2024, 2, 5)},
		}
		got := SummarizeFeeRevenue(payments, now, true)
		if got["维修基金"] != 100000 {
			t.Errorf("维修基金 = %v, 期望 100000", got["维修基金"])
		}
	})

	t.Run("无数据返回空映射", func(t *testing.T) {
		got := SummarizeFeeRevenue(nil, now, false)
		if got == nil || len(got) != 0 {
			t.Errorf("期望非nil空映射, got %v", got)
		}
	})
}
