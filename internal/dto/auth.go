package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求；company 用户需提供公司名
type RegisterRequest struct {
	Email       string `json:"email"       binding:"required,email,max=255"`
	Password    string `json:"password"    binding:"required,min=8,max=72"`
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	UserType    string `json:"userType"    binding:"required,oneof=individual company"`
	CompanyName string `json:"companyName" binding:"omitempty,max=200"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"` // 非 Cookie 模式时使用
}

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	ExpiresIn    int          `json:"expiresIn"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息（脱敏）
type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	UserType  string           `json:"userType"`
	Suspended bool             `json:"suspended,omitempty"`
	Company   *CompanyResponse `json:"company,omitempty"`
	CreatedAt string           `json:"createdAt,omitempty"`
}
