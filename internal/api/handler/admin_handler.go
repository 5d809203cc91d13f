package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// AdminHandler 管理后台 HTTP 处理器（路由层已挂 AdminOnly）
type AdminHandler struct {
	adminSvc service.AdminService
	auditSvc service.AuditService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService, auditSvc service.AuditService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, auditSvc: auditSvc}
}

// AuditLogs 审计日志
// GET /api/admin/audit-logs
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	var req dto.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	logs, total, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

// Stats 平台统计
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, stats)
}

// SuspendUser 封禁 / 解封用户
// PUT /api/admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.SuspendUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.adminSvc.SuspendUser(c.Request.Context(), p, c.Param("id"), *req.Suspended)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, user)
}
