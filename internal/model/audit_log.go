package model

import (
	"time"

	"gorm.io/gorm"
)

// 审计动作
const (
	AuditInvitationIssued   = "invitation.issued"
	AuditInvitationAccepted = "invitation.accepted"
	AuditInvitationDeclined = "invitation.declined"
	AuditApplicationCreated = "application.created"
	AuditApplicationStatus  = "application.status_changed"
	AuditOpportunityStatus  = "opportunity.status_changed"
	AuditInterviewScheduled = "interview.scheduled"
	AuditUserSuspended      = "user.suspended"
	AuditTeamMemberRemoved  = "team.member_removed"
)

// AuditLog 审计日志表，对应 audit_logs（只追加）
type AuditLog struct {
	AuditLogID string    `gorm:"type:uuid;primaryKey"             json:"id"`
	ActorID    *string   `gorm:"type:uuid;index"                  json:"actorId,omitempty"`
	Action     string    `gorm:"type:varchar(64);not null;index"  json:"action"`
	EntityType string    `gorm:"type:varchar(64);not null"        json:"entityType"`
	EntityID   string    `gorm:"type:varchar(64);not null;index"  json:"entityId"`
	Metadata   JSONMap   `json:"metadata,omitempty"`
	IP         string    `gorm:"type:varchar(64)"                 json:"ip,omitempty"`
	CreatedAt  time.Time `gorm:"not null;index"                   json:"createdAt"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }

// BeforeCreate 生成主键
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.AuditLogID)
	return nil
}

// AllModels 全部模型（SQLite 数据源 AutoMigrate 使用）
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Company{},
		&CompanyUser{},
		&Team{},
		&TeamMember{},
		&Opportunity{},
		&TeamApplication{},
		&Interview{},
		&AuditLog{},
	}
}
