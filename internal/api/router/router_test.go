package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/api/handler"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
)

func TestSetup_WithoutRedis(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{MaxBodyBytes: 1 << 20, CORS: config.CORSConfig{AllowOrigins: []string{"*"}}},
		Auth:    config.AuthConfig{JWTSecret: "router-test-secret-0123456789", AccessTokenTTL: time.Minute},
		Feature: config.FeatureConfig{RateLimit: true},
	}
	h := handler.NewHandler(cfg, &service.Service{})
	engine := Setup(cfg, h, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/teams", http.StatusUnauthorized},
		{"GET", "/api/admin/stats", http.StatusUnauthorized},
		{"GET", "/api/matching/teams", http.StatusUnauthorized},
		{"GET", "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s 期望 %d，实际 %d", tt.method, tt.path, tt.want, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s %s 缺少 X-Request-ID", tt.method, tt.path)
		}
	}
}
