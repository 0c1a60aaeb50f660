package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户角色：admin(系统管理员)、accountant(会计)
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
)

// User 表示系统操作员（管理员或会计）
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"` // 登录用户名
	Password string `gorm:"type:varchar(100);not null" json:"-"`              // 不在JSON中暴露密码
	Name     string `gorm:"type:varchar(100)" json:"name"`                    // 显示名称
	Email    string `gorm:"type:varchar(100)" json:"email"`
	Role     string `gorm:"type:varchar(20);default:'accountant'" json:"role"` // admin, accountant
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"`   // active, inactive

	// Relations
	Payments []Payment `gorm:"foreignKey:CollectorID" json:"payments,omitempty"` // 该用户录入的缴费记录
}

// HashPassword 使用 bcrypt 对密码进行哈希处理
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash 比较密码和哈希值
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
