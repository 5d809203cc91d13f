package dto

// ── 邀请模块 DTO ──

// CreateInvitationRequest 发出团队 / 公司邀请
type CreateInvitationRequest struct {
	Email   string `json:"email"   binding:"required,email,max=255"`
	Role    string `json:"role"    binding:"omitempty,oneof=owner admin recruiter member"`
	Message string `json:"message" binding:"omitempty,max=2000"`
}

// RespondInvitationRequest 响应邀请
type RespondInvitationRequest struct {
	Action string `json:"action"`
}

// InvitationResponse 发出的邀请（令牌仅在创建时返回一次）
type InvitationResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"` // team | company
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"`
	InviteURL string `json:"inviteUrl,omitempty"`
	EmailSent *bool  `json:"emailSent,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// InvitationLookupResponse GET /invites/:token
type InvitationLookupResponse struct {
	Kind             string `json:"kind"`
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	Role             string `json:"role"`
	Email            string `json:"email"`
	InvitedBy        string `json:"invitedBy,omitempty"`
	ExpiresAt        string `json:"expiresAt"`
	Status           string `json:"status"`
}

// InvitationResultResponse POST /invites/:token
type InvitationResultResponse struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}
