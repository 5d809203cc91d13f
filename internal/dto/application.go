package dto

// ── 申请与 Offer DTO ──

// CreateApplicationRequest 团队申请机会
type CreateApplicationRequest struct {
	TeamID        string `json:"teamId"        binding:"required,uuid"`
	OpportunityID string `json:"opportunityId" binding:"required,uuid"`
	CoverLetter   string `json:"coverLetter"   binding:"omitempty,max=10000"`
}

// ApplicationListRequest 申请列表（teamId 与 opportunityId 二选一）
type ApplicationListRequest struct {
	TeamID        string `form:"teamId"        binding:"omitempty,uuid"`
	OpportunityID string `form:"opportunityId" binding:"omitempty,uuid"`
}

// UpdateApplicationStatusRequest 公司方修改申请状态
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewing rejected"`
}

// MakeOfferRequest 发出 Offer
type MakeOfferRequest struct {
	Compensation int64  `json:"compensation" binding:"required,min=1"`
	StartDate    string `json:"startDate"    binding:"omitempty"` // YYYY-MM-DD
	Message      string `json:"message"      binding:"omitempty,max=5000"`
}

// RespondOfferRequest 团队响应 Offer
type RespondOfferRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

// ApplicationResponse 申请信息
type ApplicationResponse struct {
	ID                string              `json:"id"`
	TeamID            string              `json:"teamId"`
	TeamName          string              `json:"teamName,omitempty"`
	OpportunityID     string              `json:"opportunityId"`
	OpportunityTitle  string              `json:"opportunityTitle,omitempty"`
	CompanyName       string              `json:"companyName,omitempty"`
	Status            string              `json:"status"`
	CoverLetter       string              `json:"coverLetter,omitempty"`
	OfferCompensation int64               `json:"offerCompensation,omitempty"`
	OfferStartDate    string              `json:"offerStartDate,omitempty"`
	OfferMessage      string              `json:"offerMessage,omitempty"`
	OfferMadeAt       string              `json:"offerMadeAt,omitempty"`
	RespondedAt       string              `json:"respondedAt,omitempty"`
	Score             *MatchScoreResponse `json:"score,omitempty"`
	CreatedAt         string              `json:"createdAt"`
}
