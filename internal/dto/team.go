package dto

// ── 团队模块 DTO ──

// CreateTeamRequest 创建团队
type CreateTeamRequest struct {
	Name             string   `json:"name"             binding:"required,min=1,max=200"`
	Description      string   `json:"description"      binding:"omitempty,max=5000"`
	Industry         string   `json:"industry"         binding:"omitempty,max=100"`
	Specialization   string   `json:"specialization"   binding:"omitempty,max=200"`
	Location         string   `json:"location"         binding:"omitempty,max=200"`
	Size             int      `json:"size"             binding:"omitempty,min=0,max=1000"`
	Skills           []string `json:"skills"           binding:"omitempty,max=100,dive,max=100"`
	CompensationMin  int64    `json:"compensationMin"  binding:"omitempty,min=0"`
	CompensationMax  int64    `json:"compensationMax"  binding:"omitempty,min=0"`
	YearsTogether    float64  `json:"yearsTogether"    binding:"omitempty,min=0,max=100"`
	Availability     string   `json:"availability"     binding:"omitempty,oneof=immediate within_month within_quarter not_looking"`
	OpenToRelocation bool     `json:"openToRelocation"`
	Visible          *bool    `json:"visible"`
}

// UpdateTeamRequest 更新团队（字段为空表示不修改）
type UpdateTeamRequest struct {
	Name             *string   `json:"name"             binding:"omitempty,min=1,max=200"`
	Description      *string   `json:"description"      binding:"omitempty,max=5000"`
	Industry         *string   `json:"industry"         binding:"omitempty,max=100"`
	Specialization   *string   `json:"specialization"   binding:"omitempty,max=200"`
	Location         *string   `json:"location"         binding:"omitempty,max=200"`
	Size             *int      `json:"size"             binding:"omitempty,min=0,max=1000"`
	Skills           *[]string `json:"skills"           binding:"omitempty,max=100"`
	CompensationMin  *int64    `json:"compensationMin"  binding:"omitempty,min=0"`
	CompensationMax  *int64    `json:"compensationMax"  binding:"omitempty,min=0"`
	YearsTogether    *float64  `json:"yearsTogether"    binding:"omitempty,min=0,max=100"`
	Availability     *string   `json:"availability"     binding:"omitempty,oneof=immediate within_month within_quarter not_looking"`
	OpenToRelocation *bool     `json:"openToRelocation"`
	Visible          *bool     `json:"visible"`
}

// TeamListRequest 团队列表查询
type TeamListRequest struct {
	PaginationRequest
	Industry string `form:"industry" binding:"omitempty,max=100"`
	Location string `form:"location" binding:"omitempty,max=200"`
}

// UpdateMyMembershipRequest 成员更新自己的头衔与技能
type UpdateMyMembershipRequest struct {
	Title  string   `json:"title"  binding:"omitempty,max=200"`
	Skills []string `json:"skills" binding:"omitempty,max=100,dive,max=100"`
}

// TeamResponse 团队信息
type TeamResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Specialization   string   `json:"specialization,omitempty"`
	Location         string   `json:"location,omitempty"`
	Size             int      `json:"size"`
	Skills           []string `json:"skills"`
	EffectiveSkills  []string `json:"effectiveSkills"`
	CompensationMin  int64    `json:"compensationMin"`
	CompensationMax  int64    `json:"compensationMax"`
	YearsTogether    float64  `json:"yearsTogether"`
	Availability     string   `json:"availability,omitempty"`
	OpenToRelocation bool     `json:"openToRelocation"`
	Visible          bool     `json:"visible"`
	MemberCount      int      `json:"memberCount"`
	CreatedBy        string   `json:"createdBy"`
	CreatedAt        string   `json:"createdAt"`
}

// TeamMemberResponse 团队成员
type TeamMemberResponse struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Title    string   `json:"title,omitempty"`
	Skills   []string `json:"skills"`
	JoinedAt string   `json:"joinedAt,omitempty"`
}
