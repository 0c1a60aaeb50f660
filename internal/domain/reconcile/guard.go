package reconcile

import (
	"time"

	"bluemoon-fee-service/internal/domain/models"
)

// DuplicateInterval 返回重复缴费预检查所用的左闭右开周期区间。
// 同一 (费用项, 户号, 自然月) 至多允许一条缴费记录；真正的唯一性由
// payments 表上 (fee_id, household_id, period) 的联合唯一索引保证，
// 这里的区间查询只用于在写入前返回友好的错误信息。
func DuplicateInterval(periodKey time.Time) (time.Time, time.Time) {
	return MonthInterval(periodKey)
}

// CanModify 判断缴费记录当前状态是否允许修正。
// refunded 是终态：退款后的记录不允许再修改任何字段。
func CanModify(status string) bool {
	return status != models.PaymentStatusRefunded
}
