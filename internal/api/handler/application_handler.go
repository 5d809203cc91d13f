package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// ApplicationHandler 申请与 Offer HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Create 团队申请机会
// POST /api/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.appSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, app)
}

// List 申请列表（teamId 或 opportunityId）
// GET /api/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.appSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// Get 申请详情（附匹配评分）
// GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, app)
}

// UpdateStatus 公司方修改状态
// PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.appSvc.UpdateStatus(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, app)
}

// Withdraw 团队撤回申请
// POST /api/applications/:id/withdraw
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Withdraw(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, app)
}

// MakeOffer 发出 Offer
// POST /api/applications/:id/offer
func (h *ApplicationHandler) MakeOffer(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.appSvc.MakeOffer(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, app)
}

// RespondOffer 团队接受 / 拒绝 Offer
// POST /api/applications/:id/offer/respond
func (h *ApplicationHandler) RespondOffer(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.RespondOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.appSvc.RespondOffer(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, app)
}
