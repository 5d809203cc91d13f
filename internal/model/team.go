package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 团队成员角色
const (
	TeamRoleOwner  = "owner"
	TeamRoleAdmin  = "admin"
	TeamRoleMember = "member"
)

// 团队到岗时间
const (
	AvailabilityImmediate     = "immediate"
	AvailabilityWithinMonth   = "within_month"
	AvailabilityWithinQuarter = "within_quarter"
	AvailabilityNotLooking    = "not_looking"
)

// Team 团队表，对应 teams
type Team struct {
	TeamID           string      `gorm:"type:uuid;primaryKey"       json:"id"`
	Name             string      `gorm:"type:varchar(200);not null" json:"name"`
	Description      string      `gorm:"type:text"                  json:"description"`
	Industry         string      `gorm:"type:varchar(100)"          json:"industry"`
	Specialization   string      `gorm:"type:varchar(200)"          json:"specialization"`
	Location         string      `gorm:"type:varchar(200)"          json:"location"`
	Size             int         `gorm:"not null;default:0"         json:"size"`
	Skills           StringArray `json:"skills"`
	CompensationMin  int64       `gorm:"not null;default:0"         json:"compensationMin"`
	CompensationMax  int64       `gorm:"not null;default:0"         json:"compensationMax"`
	YearsTogether    float64     `gorm:"not null;default:0"         json:"yearsTogether"`
	Availability     string      `gorm:"type:varchar(20)"           json:"availability"`
	OpenToRelocation bool        `gorm:"not null;default:false"     json:"openToRelocation"`
	Visible          bool        `gorm:"not null;default:true"      json:"visible"`
	CreatedBy        string      `gorm:"type:uuid;not null"         json:"createdBy"`
	BaseModel

	// 关联
	Members []TeamMember `gorm:"foreignKey:TeamID;references:TeamID" json:"members,omitempty"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// BeforeCreate 生成主键
func (t *Team) BeforeCreate(_ *gorm.DB) error {
	ensureID(&t.TeamID)
	return nil
}

// EffectiveSkills 团队技能汇总：团队自身技能 ∪ 活跃成员技能，
// 大小写不敏感去重，保留首次出现的顺序与写法。
func (t *Team) EffectiveSkills() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(t.Skills))
	add := func(s string) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}
	for _, s := range t.Skills {
		add(s)
	}
	for _, m := range t.Members {
		if m.Status != MemberStatusActive {
			continue
		}
		for _, s := range m.Skills {
			add(s)
		}
	}
	return out
}

// ActiveMemberCount 活跃成员数
func (t *Team) ActiveMemberCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Status == MemberStatusActive {
			n++
		}
	}
	return n
}

// TeamMember 团队成员表，对应 team_members，邀请字段内联
type TeamMember struct {
	TeamMemberID string      `gorm:"type:uuid;primaryKey"                     json:"id"`
	TeamID       string      `gorm:"type:uuid;not null;index"                 json:"teamId"`
	UserID       *string     `gorm:"type:uuid;index"                          json:"userId,omitempty"`
	Role         string      `gorm:"type:varchar(20);not null;default:member" json:"role"`
	Status       string      `gorm:"type:varchar(20);not null;index"          json:"status"`
	Title        string      `gorm:"type:varchar(200)"                        json:"title"`
	Skills       StringArray `json:"skills"`
	JoinedAt     *time.Time  `json:"joinedAt,omitempty"`
	MembershipInvite
	BaseModel

	// 关联
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (TeamMember) TableName() string { return "team_members" }

// BeforeCreate 生成主键
func (tm *TeamMember) BeforeCreate(_ *gorm.DB) error {
	ensureID(&tm.TeamMemberID)
	tm.InviteEmail = NormalizeEmail(tm.InviteEmail)
	return nil
}

// CanManage 是否具备团队管理权限
func (tm *TeamMember) CanManage() bool {
	return tm.Status == MemberStatusActive &&
		(tm.Role == TeamRoleOwner || tm.Role == TeamRoleAdmin)
}
