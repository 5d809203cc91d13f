package model

import (
	"strings"

	"gorm.io/gorm"
)

// 用户类型
const (
	UserTypeIndividual = "individual"
	UserTypeCompany    = "company"
	UserTypeAdmin      = "admin"
)

// User 用户表，对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"                         json:"id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"       json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                   json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                   json:"-"`
	UserType     string `gorm:"type:varchar(20);not null;default:individual" json:"userType"`
	Suspended    bool   `gorm:"not null;default:false"                       json:"suspended"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// BeforeCreate 生成主键并统一邮箱大小写
func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.UserID)
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail 邮箱统一转小写并去除首尾空白
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
