package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// MustGetPrincipal 从 Gin 上下文中提取 JWT 中间件注入的调用者。
// 未认证时写入 401 并返回 false，调用方应直接 return。
func MustGetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	p := OptionalPrincipal(c)
	if p == nil || p.UserID == "" {
		response.Unauthorized(c, 10002, "Authentication required")
		return nil, false
	}
	return p, true
}

// OptionalPrincipal 可选认证路由使用；匿名请求返回 nil
func OptionalPrincipal(c *gin.Context) *auth.Principal {
	v, exists := c.Get(auth.PrincipalKey)
	if !exists {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// tokenClaims 当前 Access Token 的声明（注销时加入黑名单）
func tokenClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
