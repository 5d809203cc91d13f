package model

import (
	"time"

	"gorm.io/gorm"
)

// 公司成员角色
const (
	CompanyRoleOwner     = "owner"
	CompanyRoleAdmin     = "admin"
	CompanyRoleRecruiter = "recruiter"
	CompanyRoleMember    = "member"
)

// Company 公司表，对应 companies
type Company struct {
	CompanyID   string `gorm:"type:uuid;primaryKey"        json:"id"`
	Name        string `gorm:"type:varchar(200);not null"  json:"name"`
	Industry    string `gorm:"type:varchar(100)"           json:"industry"`
	Location    string `gorm:"type:varchar(200)"           json:"location"`
	Description string `gorm:"type:text"                   json:"description"`
	Verified    bool   `gorm:"not null;default:false"      json:"verified"`
	BaseModel
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }

// BeforeCreate 生成主键
func (c *Company) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.CompanyID)
	return nil
}

// CompanyUser 公司成员表，对应 company_users，邀请字段内联
type CompanyUser struct {
	CompanyUserID string     `gorm:"type:uuid;primaryKey"                     json:"id"`
	CompanyID     string     `gorm:"type:uuid;not null;index"                 json:"companyId"`
	UserID        *string    `gorm:"type:uuid;index"                          json:"userId,omitempty"`
	Role          string     `gorm:"type:varchar(20);not null;default:member" json:"role"`
	Status        string     `gorm:"type:varchar(20);not null;index"          json:"status"`
	JoinedAt      *time.Time `json:"joinedAt,omitempty"`
	MembershipInvite
	BaseModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
}

// TableName 指定表名
func (CompanyUser) TableName() string { return "company_users" }

// BeforeCreate 生成主键
func (cu *CompanyUser) BeforeCreate(_ *gorm.DB) error {
	ensureID(&cu.CompanyUserID)
	cu.InviteEmail = NormalizeEmail(cu.InviteEmail)
	return nil
}

// CanManage 是否具备公司管理权限（邀请成员、修改资料）
func (cu *CompanyUser) CanManage() bool {
	return cu.Status == MemberStatusActive &&
		(cu.Role == CompanyRoleOwner || cu.Role == CompanyRoleAdmin)
}
