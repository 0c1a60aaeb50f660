package models

import "time"

// 费用类型
const (
	FeeTypeMandatory   = "mandatory"   // 强制性费用
	FeeTypeService     = "service"     // 服务费
	FeeTypeMaintenance = "maintenance" // 维修基金
	FeeTypeWater       = "water"       // 水费
	FeeTypeElectricity = "electricity" // 电费
	FeeTypeParking     = "parking"     // 停车费
	FeeTypeInternet    = "internet"    // 网络费
	FeeTypeSecurity    = "security"    // 安保费
	FeeTypeOther       = "other"       // 其他
)

// ValidFeeTypes 所有合法的费用类型
var ValidFeeTypes = map[string]bool{
	FeeTypeMandatory:   true,
	FeeTypeService:     true,
	FeeTypeMaintenance: true,
	FeeTypeWater:       true,
	FeeTypeElectricity: true,
	FeeTypeParking:     true,
	FeeTypeInternet:    true,
	FeeTypeSecurity:    true,
	FeeTypeOther:       true,
}

// Fee 表示一个按月重复的费用项（收费模板，不是单月账单）
type Fee struct {
	BaseModel
	FeeCode     string     `gorm:"type:varchar(20);unique;not null" json:"fee_code"` // 费用编码，如"F001"
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`           // 费用名称
	Description string     `gorm:"type:varchar(500)" json:"description"`
	FeeType     string     `gorm:"type:varchar(20);not null;default:'mandatory'" json:"fee_type"` // 费用类型
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`                     // 默认每月金额
	StartDate   time.Time  `gorm:"not null" json:"start_date"`                                    // 生效日期
	EndDate     *time.Time `json:"end_date"`                                                      // 失效日期，可为空
	Active      bool       `gorm:"default:true" json:"active"`                                    // 停用后不参与对账

	// Relations
	Payments []Payment `gorm:"foreignKey:FeeID" json:"payments,omitempty"` // 该费用项的缴费记录（一对多）
}
