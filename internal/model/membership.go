package model

import "time"

// 成员关系状态；expired 不落库，由 InviteExpiresAt 在读取时推导
const (
	MemberStatusPending  = "pending"
	MemberStatusActive   = "active"
	MemberStatusDeclined = "declined"
)

// InviteStatusExpired 仅用于响应展示
const InviteStatusExpired = "expired"

// MembershipInvite 内联在成员关系行上的邀请字段（team_members / company_users 共用）
//
// 令牌一次性使用：接受或拒绝后 InviteToken 被置空（或整行删除）。
type MembershipInvite struct {
	InviteEmail     string     `gorm:"type:varchar(255)"             json:"inviteEmail,omitempty"`
	InviteToken     *string    `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	InviteExpiresAt *time.Time `json:"inviteExpiresAt,omitempty"`
	InvitedBy       *string    `gorm:"type:uuid"                     json:"invitedBy,omitempty"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
}

// IsExpired 判断邀请是否已过期
func (m *MembershipInvite) IsExpired(now time.Time) bool {
	return m.InviteExpiresAt != nil && now.After(*m.InviteExpiresAt)
}

// DerivedStatus 结合过期时间推导的展示状态
func DerivedStatus(status string, invite *MembershipInvite, now time.Time) string {
	if status == MemberStatusPending && invite.IsExpired(now) {
		return InviteStatusExpired
	}
	return status
}
