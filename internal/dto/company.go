package dto

// ── 公司模块 DTO ──

// UpdateCompanyRequest 更新公司资料
type UpdateCompanyRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Industry    *string `json:"industry"    binding:"omitempty,max=100"`
	Location    *string `json:"location"    binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// CompanyResponse 公司信息
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Verified    bool   `json:"verified"`
	Role        string `json:"role,omitempty"` // 调用者在该公司的角色
}

// CompanyMemberResponse 公司成员
type CompanyMemberResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt,omitempty"`
}
