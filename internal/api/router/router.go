package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/api/handler"
	"github.com/ezhulati/liftout-platform-sub008/internal/api/middleware"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/redis"
)

// 认证与邀请接口的限流窗口
const (
	rateLimitRequests = 20
	rateLimitWindow   = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// *redis.Client 为 nil 时必须保持接口为 nil
	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist = rdb
		if cfg.Feature.RateLimit {
			limiter = rdb
		}
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.JWTAuth(jwtMgr, blacklist, logger)
	optionalAuth := middleware.OptionalJWT(jwtMgr, blacklist, logger)
	throttle := middleware.RateLimit(limiter, rateLimitRequests, rateLimitWindow, logger)

	api := r.Group("/api")
	{
		// 认证
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", throttle, h.Auth.Register)
			authGroup.POST("/login", throttle, h.Auth.Login)
			authGroup.POST("/refresh", throttle, h.Auth.Refresh)
			authGroup.POST("/logout", requireAuth, h.Auth.Logout)
			authGroup.GET("/me", requireAuth, h.Auth.Me)
		}

		// 邀请令牌（查看无需登录；接受需要登录，由业务层返回 requiresAuth）
		invites := api.Group("/invites", throttle, optionalAuth)
		{
			invites.GET("/:token", h.Invitation.Lookup)
			invites.POST("/:token", h.Invitation.Respond)
		}

		// 以下路由需要登录
		authorized := api.Group("", requireAuth)

		// 团队
		teams := authorized.Group("/teams")
		{
			teams.POST("", h.Team.Create)
			teams.GET("", h.Team.List)
			teams.GET("/mine", h.Team.Mine)
			teams.GET("/:id", h.Team.Get)
			teams.PUT("/:id", h.Team.Update)
			teams.GET("/:id/members", h.Team.Members)
			teams.PUT("/:id/members/me", h.Team.UpdateMyMembership)
			teams.DELETE("/:id/members/:memberId", h.Team.RemoveMember)
			teams.POST("/:id/invitations", h.Invitation.InviteToTeam)
			teams.GET("/:id/invitations", h.Invitation.ListTeam)
		}

		// 公司
		companies := authorized.Group("/companies")
		{
			companies.GET("/me", h.Company.GetMine)
			companies.PUT("/me", h.Company.UpdateMine)
			companies.GET("/users", h.Company.Members)
			companies.POST("/invitations", h.Invitation.InviteToCompany)
			companies.GET("/invitations", h.Invitation.ListCompany)
		}

		// 招聘机会
		opportunities := authorized.Group("/opportunities")
		{
			opportunities.POST("", h.Opportunity.Create)
			opportunities.GET("", h.Opportunity.List)
			opportunities.GET("/:id", h.Opportunity.Get)
			opportunities.PUT("/:id", h.Opportunity.Update)
			opportunities.PUT("/:id/status", h.Opportunity.UpdateStatus)
			opportunities.GET("/:id/applications/export", h.Export.ExportApplications)
		}

		// 匹配评分
		matching := authorized.Group("/matching")
		{
			matching.GET("/teams", h.Matching.Teams)
			matching.GET("/opportunities", h.Matching.Opportunities)
		}

		// 申请、Offer 与面试
		applications := authorized.Group("/applications")
		{
			applications.POST("", h.Application.Create)
			applications.GET("", h.Application.List)
			applications.GET("/:id", h.Application.Get)
			applications.PUT("/:id/status", h.Application.UpdateStatus)
			applications.POST("/:id/withdraw", h.Application.Withdraw)
			applications.POST("/:id/offer", h.Application.MakeOffer)
			applications.POST("/:id/offer/respond", h.Application.RespondOffer)
			applications.POST("/:id/interviews", h.Interview.Schedule)
			applications.GET("/:id/interviews", h.Interview.List)
		}
		authorized.GET("/interviews/:id/calendar.ics", h.Interview.Calendar)

		// 管理后台
		admin := authorized.Group("/admin", middleware.AdminOnly())
		{
			admin.GET("/audit-logs", h.Admin.AuditLogs)
			admin.GET("/stats", h.Admin.Stats)
			admin.PUT("/users/:id/suspend", h.Admin.SuspendUser)
		}
	}

	return r
}
