package model

import (
	"time"

	"gorm.io/gorm"
)

// 申请状态
const (
	ApplicationStatusSubmitted    = "submitted"
	ApplicationStatusReviewing    = "reviewing"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOfferMade    = "offer_made"
	ApplicationStatusAccepted     = "accepted"
	ApplicationStatusRejected     = "rejected"
	ApplicationStatusWithdrawn    = "withdrawn"
)

// ActiveApplicationStatuses 非终态
var ActiveApplicationStatuses = []string{
	ApplicationStatusSubmitted,
	ApplicationStatusReviewing,
	ApplicationStatusInterviewing,
	ApplicationStatusOfferMade,
}

// TeamApplication 团队申请表，对应 team_applications
type TeamApplication struct {
	ApplicationID     string     `gorm:"type:uuid;primaryKey"                                   json:"id"`
	TeamID            string     `gorm:"type:uuid;not null;uniqueIndex:uq_application_team_opp" json:"teamId"`
	OpportunityID     string     `gorm:"type:uuid;not null;uniqueIndex:uq_application_team_opp" json:"opportunityId"`
	Status            string     `gorm:"type:varchar(20);not null;index"                        json:"status"`
	CoverLetter       string     `gorm:"type:text"                                              json:"coverLetter"`
	OfferCompensation int64      `gorm:"not null;default:0"                                     json:"offerCompensation,omitempty"`
	OfferStartDate    *time.Time `json:"offerStartDate,omitempty"`
	OfferMessage      string     `gorm:"type:text"                                              json:"offerMessage,omitempty"`
	OfferMadeAt       *time.Time `json:"offerMadeAt,omitempty"`
	RespondedAt       *time.Time `json:"respondedAt,omitempty"`
	SubmittedBy       string     `gorm:"type:uuid;not null"                                     json:"submittedBy"`
	BaseModel

	// 关联
	Team        *Team        `gorm:"foreignKey:TeamID;references:TeamID"               json:"team,omitempty"`
	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID;references:OpportunityID" json:"opportunity,omitempty"`
}

// TableName 指定表名
func (TeamApplication) TableName() string { return "team_applications" }

// BeforeCreate 生成主键
func (a *TeamApplication) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ApplicationID)
	return nil
}
