package models

// Household 表示户号信息（一套公寓住房）
type Household struct {
	BaseModel
	ApartmentNumber string `gorm:"type:varchar(50);unique;not null" json:"apartment_number"` // 房号，如"A-101"
	Address         string `gorm:"type:varchar(200);not null" json:"address"`                // 地址
	Note            string `gorm:"type:varchar(500)" json:"note"`                            // 备注
	Active          bool   `gorm:"default:true" json:"active"`                               // 停用后不再产生新的缴费义务
	HeadResidentID  *uint  `json:"head_resident_id"`                                         // 户主住户ID

	// Relations - 关联关系
	HeadResident *Resident  `gorm:"foreignKey:HeadResidentID" json:"head_resident,omitempty"` // 户主（多对一）
	Residents    []Resident `gorm:"foreignKey:HouseholdID" json:"residents,omitempty"`        // 户号下的住户（一对多）
	Payments     []Payment  `gorm:"foreignKey:HouseholdID" json:"payments,omitempty"`         // 户号的缴费记录（一对多）
}
