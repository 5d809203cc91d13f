package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist struct {
	revoked map[string]bool
	users   map[string]bool
	err     error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func (f *fakeBlacklist) IsUserRevoked(_ context.Context, userID string) (bool, error) {
	return f.users[userID], f.err
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func newJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "middleware-test-secret-0123456789abcdef",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

// whoami 返回当前 Principal 的 UserID；匿名返回 "anonymous"
func whoami(c *gin.Context) {
	v, ok := c.Get(auth.PrincipalKey)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, v.(*auth.Principal).UserID)
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	mgr := newJWT()
	access, _ := mgr.GenerateAccessToken("u-1", "a@example.com", "company")
	refresh, _ := mgr.GenerateRefreshToken("u-1", "a@example.com", "company")

	r := gin.New()
	r.GET("/x", JWTAuth(mgr, nil, zap.NewNop()), whoami)

	if w := serve(r, access); w.Code != http.StatusOK || w.Body.String() != "u-1" {
		t.Errorf("有效 access token 应通过，实际 %d %s", w.Code, w.Body.String())
	}
	if w := serve(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少 token 期望 401，实际 %d", w.Code)
	}
	if w := serve(r, refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token 不能访问接口，实际 %d", w.Code)
	}
	if w := serve(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("无效 token 期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	mgr := newJWT()
	access, _ := mgr.GenerateAccessToken("u-1", "a@example.com", "individual")
	claims, _ := mgr.ParseToken(access)

	bl := &fakeBlacklist{revoked: map[string]bool{claims.ID: true}}
	r := gin.New()
	r.GET("/x", JWTAuth(mgr, bl, zap.NewNop()), whoami)
	if w := serve(r, access); w.Code != http.StatusUnauthorized {
		t.Errorf("已注销 token 期望 401，实际 %d", w.Code)
	}

	// Redis 故障时降级放行
	down := &fakeBlacklist{err: errors.New("connection refused")}
	r = gin.New()
	r.GET("/x", JWTAuth(mgr, down, zap.NewNop()), whoami)
	if w := serve(r, access); w.Code != http.StatusOK {
		t.Errorf("黑名单不可用时应放行，实际 %d", w.Code)
	}
}

func TestJWTAuth_SuspendedUserRejected(t *testing.T) {
	mgr := newJWT()
	suspended, _ := mgr.GenerateAccessToken("u-banned", "banned@example.com", "individual")
	other, _ := mgr.GenerateAccessToken("u-ok", "ok@example.com", "individual")

	bl := &fakeBlacklist{users: map[string]bool{"u-banned": true}}
	r := gin.New()
	r.GET("/x", JWTAuth(mgr, bl, zap.NewNop()), whoami)
	if w := serve(r, suspended); w.Code != http.StatusUnauthorized {
		t.Errorf("被封禁用户的未过期 token 期望 401，实际 %d", w.Code)
	}
	if w := serve(r, other); w.Code != http.StatusOK || w.Body.String() != "u-ok" {
		t.Errorf("其他用户不受影响，实际 %d %s", w.Code, w.Body.String())
	}

	r = gin.New()
	r.GET("/x", OptionalJWT(mgr, bl, zap.NewNop()), whoami)
	if w := serve(r, suspended); w.Body.String() != "anonymous" {
		t.Errorf("可选认证下被封禁用户按匿名处理，实际 %s", w.Body.String())
	}
}

func TestOptionalJWT(t *testing.T) {
	mgr := newJWT()
	access, _ := mgr.GenerateAccessToken("u-2", "b@example.com", "individual")

	r := gin.New()
	r.GET("/x", OptionalJWT(mgr, nil, zap.NewNop()), whoami)

	if w := serve(r, ""); w.Body.String() != "anonymous" {
		t.Errorf("匿名请求应放行，实际 %s", w.Body.String())
	}
	if w := serve(r, "garbage"); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("无效 token 按匿名处理，实际 %d %s", w.Code, w.Body.String())
	}
	if w := serve(r, access); w.Body.String() != "u-2" {
		t.Errorf("有效 token 应注入 Principal，实际 %s", w.Body.String())
	}
}

func TestAdminOnly(t *testing.T) {
	mgr := newJWT()
	admin, _ := mgr.GenerateAccessToken("root", "root@example.com", "admin")
	user, _ := mgr.GenerateAccessToken("u-1", "a@example.com", "company")

	r := gin.New()
	r.GET("/x", JWTAuth(mgr, nil, zap.NewNop()), AdminOnly(), whoami)

	if w := serve(r, admin); w.Code != http.StatusOK {
		t.Errorf("管理员期望 200，实际 %d", w.Code)
	}
	if w := serve(r, user); w.Code != http.StatusForbidden {
		t.Errorf("普通用户期望 403，实际 %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, zap.NewNop()), ok)
	if w := serve(r, ""); w.Code != http.StatusOK {
		t.Errorf("未启用限流时应放行，实际 %d", w.Code)
	}

	deny := &fakeLimiter{allowed: false}
	r = gin.New()
	r.GET("/x", RateLimit(deny, 1, time.Minute, zap.NewNop()), ok)
	w := serve(r, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("超限期望 429，实际 %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("期望 Retry-After=60，实际 %q", w.Header().Get("Retry-After"))
	}
	if len(deny.keys) != 1 || !strings.HasSuffix(deny.keys[0], ":/x") {
		t.Errorf("限流 key 应包含路由: %v", deny.keys)
	}

	broken := &fakeLimiter{err: errors.New("timeout")}
	r = gin.New()
	r.GET("/x", RateLimit(broken, 1, time.Minute, zap.NewNop()), ok)
	if w := serve(r, ""); w.Code != http.StatusOK {
		t.Errorf("Redis 故障时应放行，实际 %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, auth.ClientIP(c.Request.Context()))
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("期望沿用传入的 Request-ID，实际 %q", got)
	}
	if w.Body.String() == "" {
		t.Error("期望客户端 IP 写入请求上下文")
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("过长的 Request-ID 应被替换为 UUID，实际 %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"too":"large body"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("预检期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Error("允许的来源应被回显")
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应返回 CORS 头")
	}
}
