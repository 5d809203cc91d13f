package model

import (
	"time"

	"gorm.io/gorm"
)

// Interview 面试安排表，对应 interviews
type Interview struct {
	InterviewID     string      `gorm:"type:uuid;primaryKey"      json:"id"`
	ApplicationID   string      `gorm:"type:uuid;not null;index"  json:"applicationId"`
	ScheduledAt     time.Time   `gorm:"not null"                  json:"scheduledAt"`
	DurationMinutes int         `gorm:"not null;default:60"       json:"durationMinutes"`
	Location        string      `gorm:"type:varchar(255)"         json:"location,omitempty"`
	MeetingURL      string      `gorm:"type:varchar(500)"         json:"meetingUrl,omitempty"`
	Notes           string      `gorm:"type:text"                 json:"notes,omitempty"`
	Attendees       StringArray `json:"attendees"`
	CreatedBy       string      `gorm:"type:uuid;not null"        json:"createdBy"`
	BaseModel

	// 关联
	Application *TeamApplication `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
}

// TableName 指定表名
func (Interview) TableName() string { return "interviews" }

// BeforeCreate 生成主键
func (i *Interview) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.InterviewID)
	return nil
}

// EndsAt 面试结束时间
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}
