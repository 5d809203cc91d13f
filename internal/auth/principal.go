// Package auth 请求主体（Principal）与请求级上下文值。
package auth

import (
	"context"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// Principal 已认证的调用者，由 JWT 中间件构造并显式传入 Service
type Principal struct {
	UserID   string
	Email    string
	UserType string
}

// IsAdmin 是否平台管理员
func (p *Principal) IsAdmin() bool {
	return p != nil && p.UserType == model.UserTypeAdmin
}

// IsCompany 是否公司账号
func (p *Principal) IsCompany() bool {
	return p != nil && p.UserType == model.UserTypeCompany
}

// gin.Context 中的键，由认证中间件写入
const (
	PrincipalKey = "auth.principal"
	ClaimsKey    = "auth.claims"
)

type ctxKey int

const clientIPKey ctxKey = iota

// WithClientIP 将客户端 IP 写入上下文（审计日志使用）
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIP 读取上下文中的客户端 IP
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
