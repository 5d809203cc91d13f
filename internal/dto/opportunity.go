package dto

// ── 招聘机会 DTO ──

// CreateOpportunityRequest 发布机会
type CreateOpportunityRequest struct {
	Title           string   `json:"title"           binding:"required,min=1,max=200"`
	Description     string   `json:"description"     binding:"omitempty,max=10000"`
	Industry        string   `json:"industry"        binding:"omitempty,max=100"`
	Location        string   `json:"location"        binding:"omitempty,max=200"`
	Remote          bool     `json:"remote"`
	CompensationMin int64    `json:"compensationMin" binding:"omitempty,min=0"`
	CompensationMax int64    `json:"compensationMax" binding:"omitempty,min=0"`
	RequiredSkills  []string `json:"requiredSkills"  binding:"omitempty,max=100,dive,max=100"`
	PreferredSkills []string `json:"preferredSkills" binding:"omitempty,max=100,dive,max=100"`
	TeamSizeMin     int      `json:"teamSizeMin"     binding:"omitempty,min=0,max=1000"`
	TeamSizeMax     int      `json:"teamSizeMax"     binding:"omitempty,min=0,max=1000"`
	Urgency         string   `json:"urgency"         binding:"omitempty,oneof=low medium high urgent"`
}

// UpdateOpportunityRequest 更新机会（字段为空表示不修改）
type UpdateOpportunityRequest struct {
	Title           *string   `json:"title"           binding:"omitempty,min=1,max=200"`
	Description     *string   `json:"description"     binding:"omitempty,max=10000"`
	Industry        *string   `json:"industry"        binding:"omitempty,max=100"`
	Location        *string   `json:"location"        binding:"omitempty,max=200"`
	Remote          *bool     `json:"remote"`
	CompensationMin *int64    `json:"compensationMin" binding:"omitempty,min=0"`
	CompensationMax *int64    `json:"compensationMax" binding:"omitempty,min=0"`
	RequiredSkills  *[]string `json:"requiredSkills"  binding:"omitempty,max=100"`
	PreferredSkills *[]string `json:"preferredSkills" binding:"omitempty,max=100"`
	TeamSizeMin     *int      `json:"teamSizeMin"     binding:"omitempty,min=0,max=1000"`
	TeamSizeMax     *int      `json:"teamSizeMax"     binding:"omitempty,min=0,max=1000"`
	Urgency         *string   `json:"urgency"         binding:"omitempty,oneof=low medium high urgent"`
}

// UpdateOpportunityStatusRequest 修改机会状态
type UpdateOpportunityStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open filled closed"`
}

// OpportunityListRequest 机会列表查询
type OpportunityListRequest struct {
	PaginationRequest
	Status   string `form:"status"   binding:"omitempty,oneof=open filled closed all"`
	Industry string `form:"industry" binding:"omitempty,max=100"`
	Location string `form:"location" binding:"omitempty,max=200"`
}

// OpportunityResponse 机会信息
type OpportunityResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Industry        string           `json:"industry,omitempty"`
	Location        string           `json:"location,omitempty"`
	Remote          bool             `json:"remote"`
	CompensationMin int64            `json:"compensationMin"`
	CompensationMax int64            `json:"compensationMax"`
	RequiredSkills  []string         `json:"requiredSkills"`
	PreferredSkills []string         `json:"preferredSkills"`
	TeamSizeMin     int              `json:"teamSizeMin"`
	TeamSizeMax     int              `json:"teamSizeMax"`
	Urgency         string           `json:"urgency"`
	Status          string           `json:"status"`
	Company         *CompanyResponse `json:"company,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}
