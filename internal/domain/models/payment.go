package models

import "time"

// 缴费状态
const (
	PaymentStatusPaid     = "paid"     // 已缴费
	PaymentStatusPending  = "pending"  // 待缴费
	PaymentStatusOverdue  = "overdue"  // 已逾期
	PaymentStatusRefunded = "refunded" // 已退款（终态）
)

// 缴费方式
const (
	PaymentMethodCash         = "cash"          // 现金
	PaymentMethodBankTransfer = "bank_transfer" // 银行转账
	PaymentMethodOther        = "other"         // 其他
)

// ValidPaymentMethods 所有合法的缴费方式
var ValidPaymentMethods = map[string]bool{
	PaymentMethodCash:         true,
	PaymentMethodBankTransfer: true,
	PaymentMethodOther:        true,
}

// Payment 表示某户号对某费用项在某缴费周期（自然月）的一次结清记录。
// (fee_id, household_id, period) 上的联合唯一索引保证同一周期不会产生重复缴费；
// period 在写入前统一规范化为当月第一天，历史数据的 period 可为空。
type Payment struct {
	BaseModel
	FeeID       uint       `gorm:"not null;uniqueIndex:uk_fee_household_period" json:"fee_id"`
	HouseholdID uint       `gorm:"not null;uniqueIndex:uk_fee_household_period" json:"household_id"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time  `gorm:"not null" json:"payment_date"`               // 实际收款日期
	DueDate     *time.Time `json:"due_date"`                                   // 应缴截止日期，可为空
	Period      *time.Time `gorm:"uniqueIndex:uk_fee_household_period" json:"period"` // 缴费周期（当月第一天），历史数据可为空
	PayerName   string     `gorm:"type:varchar(100)" json:"payer_name"`
	PayerID     string     `gorm:"type:varchar(20)" json:"payer_id"` // 缴费人身份证号
	PayerPhone  string     `gorm:"type:varchar(20)" json:"payer_phone"`
	ReceiptNo   string     `gorm:"type:varchar(50);unique" json:"receipt_no"`       // 收据编号
	Method      string     `gorm:"type:varchar(20);default:'cash'" json:"method"`   // cash, bank_transfer, other
	Status      string     `gorm:"type:varchar(20);default:'paid'" json:"status"`   // paid, pending, overdue, refunded
	Note        string     `gorm:"type:varchar(500)" json:"note"`
	CollectorID uint       `json:"collector_id"` // 录入人（操作员）ID

	// Relations
	Fee       *Fee       `gorm:"foreignKey:FeeID" json:"fee,omitempty"`
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Collector *User      `gorm:"foreignKey:CollectorID" json:"collector,omitempty"`
}
