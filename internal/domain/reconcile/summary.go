package reconcile

import (
	"time"

	"bluemoon-fee-service/internal/domain/models"
)

// StatusSummary 缴费状态汇总，用于仪表盘饼图
type StatusSummary struct {
	Paid    int `json:"paid"`
	DueSoon int `json:"dueSoon"`
	Overdue int `json:"overdue"`
}

// SummarizeStatus 统计缴费状态分布。
// paid: 已缴费记录数（currentMonthOnly 时按 paymentDate 过滤到当月）；
// dueSoon: 待缴费且截止日期在未来7天内（含第7天）且尚未过期；
// overdue: 待缴费且截止日期已过，加上显式标记为 overdue 的记录。
// 没有截止日期的待缴费记录不计入任何一类。
func SummarizeStatus(payments []models.Payment, now time.Time, currentMonthOnly bool) StatusSummary {
	var summary StatusSummary

	soon := now.AddDate(0, 0, 7)
	var start, end time.Time
	if currentMonthOnly {
		start, end = MonthInterval(Normalize(now))
	}

	for i := range payments {
		p := &payments[i]
		switch p.Status {
		case models.PaymentStatusPaid:
			if currentMonthOnly && !within(p.PaymentDate, start, end) {
				continue
			}
			summary.Paid++
		case models.PaymentStatusPending:
			if p.DueDate == nil {
				continue
			}
			if currentMonthOnly && !within(*p.DueDate, start, end) {
				continue
			}
			if p.DueDate.Before(now) {
				summary.Overdue++
			} else if !p.DueDate.After(soon) {
				summary.DueSoon++
			}
		case models.PaymentStatusOverdue:
			if currentMonthOnly && (p.DueDate == nil || !within(*p.DueDate, start, end)) {
				continue
			}
			summary.Overdue++
		}
	}

	return summary
}

// SummarizeFeeRevenue 按费用项名称汇总已缴金额，用于仪表盘收入分布。
// 只统计 paid 状态的记录；currentMonthOnly 时按 paymentDate 过滤到当月。
// 缴费记录需预先加载 Fee 关联；没有数据时返回空映射。
func SummarizeFeeRevenue(payments []models.Payment, now time.Time, currentMonthOnly bool) map[string]float64 {
	totals := make(map[string]float64)

	var start, end time.Time
	if currentMonthOnly {
		start, end = MonthInterval(Normalize(now))
	}

	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentStatusPaid || p.Fee == nil {
			continue
		}
		if currentMonthOnly && !within(p.PaymentDate, start, end) {
			continue
		}
		totals[p.Fee.Name] += p.Amount
	}

	return totals
}
