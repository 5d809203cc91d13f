package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// Blacklist 已注销 Token 与已封禁用户的查询接口（Redis 实现）；nil 表示未启用
type Blacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	IsUserRevoked(ctx context.Context, userID string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取 Access Token，构造 auth.Principal 写入上下文
func JWTAuth(jwtMgr *jwt.Manager, blacklist Blacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, 10002, "Missing or malformed Authorization header")
			c.Abort()
			return
		}
		if !authenticate(c, jwtMgr, blacklist, logger, raw) {
			response.Unauthorized(c, 10002, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalJWT 可选认证：携带有效 Token 时注入 Principal，否则匿名放行
// 无效 Token 也按匿名处理，由业务层决定是否要求登录
func OptionalJWT(jwtMgr *jwt.Manager, blacklist Blacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			authenticate(c, jwtMgr, blacklist, logger, raw)
		}
		c.Next()
	}
}

// AdminOnly 仅平台管理员可访问，需挂在 JWTAuth 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(auth.PrincipalKey)
		if !exists {
			response.Unauthorized(c, 10002, "Authentication required")
			c.Abort()
			return
		}
		if p, ok := v.(*auth.Principal); !ok || !p.IsAdmin() {
			response.Forbidden(c, 10003, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func authenticate(c *gin.Context, jwtMgr *jwt.Manager, blacklist Blacklist, logger *zap.Logger, raw string) bool {
	claims, err := jwtMgr.ParseToken(raw)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return false
	}

	if blacklist != nil && revoked(c.Request.Context(), blacklist, logger, claims) {
		return false
	}

	c.Set(auth.PrincipalKey, &auth.Principal{
		UserID:   claims.UserID,
		Email:    claims.Email,
		UserType: claims.UserType,
	})
	c.Set(auth.ClaimsKey, claims)
	return true
}

// revoked Token 本身被注销或所属用户被封禁；Redis 故障时降级放行
func revoked(ctx context.Context, blacklist Blacklist, logger *zap.Logger, claims *jwt.Claims) bool {
	if hit, err := blacklist.IsBlacklisted(ctx, claims.ID); err != nil {
		logger.Warn("查询 Token 黑名单失败", zap.Error(err))
	} else if hit {
		return true
	}
	hit, err := blacklist.IsUserRevoked(ctx, claims.UserID)
	if err != nil {
		logger.Warn("查询用户吊销状态失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	return hit
}
