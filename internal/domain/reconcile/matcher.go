package reconcile

import (
	"time"

	"bluemoon-fee-service/internal/domain/models"
)

// PeriodRef 是缴费记录周期归属的带标签表示：
// 新数据带有 period（月键），period 字段上线之前的历史数据只能按
// paymentDate 回退匹配。两种情况共用同一个匹配入口，避免在各处重复分支。
type PeriodRef struct {
	tagged bool
	month  time.Time // tagged 时为规范化后的月键
	date   time.Time // 历史数据的实际收款日期
}

// RefOf 根据缴费记录构造其周期归属
func RefOf(p *models.Payment) PeriodRef {
	if p.Period != nil {
		return PeriodRef{tagged: true, month: Normalize(*p.Period)}
	}
	return PeriodRef{date: p.PaymentDate}
}

// Tagged 返回该记录是否带有显式周期
func (r PeriodRef) Tagged() bool {
	return r.tagged
}

// Covers 判断该周期归属是否落在指定月键所在的自然月内
func (r PeriodRef) Covers(monthKey time.Time) bool {
	start, end := MonthInterval(monthKey)
	if r.tagged {
		return r.month.Equal(start)
	}
	return within(r.date, start, end)
}

// FindPaymentForPeriod 在缴费历史中查找某费用项在指定月的缴费记录。
// 带 period 的记录先匹配，保证其优先于按 paymentDate 的历史回退匹配；
// 返回第一个匹配项，找不到返回 nil。无副作用。
func FindPaymentForPeriod(payments []models.Payment, feeID uint, monthKey time.Time) *models.Payment {
	for i := range payments {
		p := &payments[i]
		if p.FeeID != feeID || p.Period == nil {
			continue
		}
		if RefOf(p).Covers(monthKey) {
			return p
		}
	}
	for i := range payments {
		p := &payments[i]
		if p.FeeID != feeID || p.Period != nil {
			continue
		}
		if RefOf(p).Covers(monthKey) {
			return p
		}
	}
	return nil
}
