package reconcile

import (
	"time"

	"bluemoon-fee-service/internal/domain/models"
)

// 对账状态
const (
	StatusPaid          = "paid"           // 已缴费
	StatusPending       = "pending"        // 待缴费
	StatusOverdue       = "overdue"        // 已逾期
	StatusNotApplicable = "not_applicable" // 该月费用项尚未生效
)

// FeeStatus 表示单个费用项在当月与上月的对账结果
type FeeStatus struct {
	FeeID               uint            `json:"fee_id"`
	Name                string          `json:"name"`
	FeeType             string          `json:"fee_type"`
	Amount              float64         `json:"amount"`
	CurrentMonthStatus  string          `json:"current_month_status"`
	LastMonthStatus     string          `json:"last_month_status"`
	CurrentMonthPayment *models.Payment `json:"current_month_payment"`
	LastMonthPayment    *models.Payment `json:"last_month_payment"`
}

// Classify 按参考日期判定某费用项在当月与上月的缴费状态。
// 当月永远不会判为 overdue——当前周期尚未结束，只会是 paid 或 pending；
// 上月无匹配缴费且费用项在上月已生效时判为 overdue，否则 not_applicable。
func Classify(fee models.Fee, payments []models.Payment, referenceDate time.Time) FeeStatus {
	currentKey := Normalize(referenceDate)
	lastKey := PreviousMonth(currentKey)

	current := FindPaymentForPeriod(payments, fee.ID, currentKey)
	last := FindPaymentForPeriod(payments, fee.ID, lastKey)

	status := FeeStatus{
		FeeID:               fee.ID,
		Name:                fee.Name,
		FeeType:             fee.FeeType,
		Amount:              fee.Amount,
		CurrentMonthPayment: current,
		LastMonthPayment:    last,
	}

	if current != nil {
		status.CurrentMonthStatus = StatusPaid
	} else {
		status.CurrentMonthStatus = StatusPending
	}

	switch {
	case last != nil:
		status.LastMonthStatus = StatusPaid
	case !fee.StartDate.After(LastDayOfMonth(lastKey)):
		// 上月已生效但没有缴费记录
		status.LastMonthStatus = StatusOverdue
	default:
		status.LastMonthStatus = StatusNotApplicable
	}

	return status
}

// ClassifyAll 对每个费用项逐一判定。调用方只传入启用的费用项；
// 没有启用费用项时返回空列表而不是错误。
func ClassifyAll(fees []models.Fee, payments []models.Payment, referenceDate time.Time) []FeeStatus {
	statuses := make([]FeeStatus, 0, len(fees))
	for _, fee := range fees {
		statuses = append(statuses, Classify(fee, payments, referenceDate))
	}
	return statuses
}
