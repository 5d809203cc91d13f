package model

import "gorm.io/gorm"

// 机会状态
const (
	OpportunityStatusOpen   = "open"
	OpportunityStatusFilled = "filled"
	OpportunityStatusClosed = "closed"
)

// 紧急程度
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// Opportunity 招聘机会表，对应 opportunities
type Opportunity struct {
	OpportunityID   string      `gorm:"type:uuid;primaryKey"                   json:"id"`
	CompanyID       string      `gorm:"type:uuid;not null;index"               json:"companyId"`
	Title           string      `gorm:"type:varchar(200);not null"             json:"title"`
	Description     string      `gorm:"type:text"                              json:"description"`
	Industry        string      `gorm:"type:varchar(100)"                      json:"industry"`
	Location        string      `gorm:"type:varchar(200)"                      json:"location"`
	Remote          bool        `gorm:"not null;default:false"                 json:"remote"`
	CompensationMin int64       `gorm:"not null;default:0"                     json:"compensationMin"`
	CompensationMax int64       `gorm:"not null;default:0"                     json:"compensationMax"`
	RequiredSkills  StringArray `json:"requiredSkills"`
	PreferredSkills StringArray `json:"preferredSkills"`
	TeamSizeMin     int         `gorm:"not null;default:0"                     json:"teamSizeMin"`
	TeamSizeMax     int         `gorm:"not null;default:0"                     json:"teamSizeMax"`
	Urgency         string      `gorm:"type:varchar(20);not null;default:medium" json:"urgency"`
	Status          string      `gorm:"type:varchar(20);not null;index"        json:"status"`
	CreatedBy       string      `gorm:"type:uuid;not null"                     json:"createdBy"`
	BaseModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (Opportunity) TableName() string { return "opportunities" }

// BeforeCreate 生成主键
func (o *Opportunity) BeforeCreate(_ *gorm.DB) error {
	ensureID(&o.OpportunityID)
	return nil
}
