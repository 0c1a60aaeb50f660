package models

import "time"

// Resident 表示户号下的住户
type Resident struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender"` // male, female, other
	DateOfBirth *time.Time `json:"date_of_birth"`
	IDCard      string     `gorm:"type:varchar(20)" json:"id_card"` // 身份证号
	IDCardDate  *time.Time `json:"id_card_date"`                    // 发证日期
	IDCardPlace string     `gorm:"type:varchar(100)" json:"id_card_place"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone"`
	Email       string     `gorm:"type:varchar(100)" json:"email"`
	HouseholdID uint       `gorm:"not null" json:"household_id"` // 所属户号ID

	// Relations
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"` // 所属户号（多对一）
}
