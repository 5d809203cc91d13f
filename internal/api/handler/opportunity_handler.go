package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// OpportunityHandler 招聘机会 HTTP 处理器
type OpportunityHandler struct {
	oppSvc service.OpportunityService
}

// NewOpportunityHandler 创建 OpportunityHandler
func NewOpportunityHandler(oppSvc service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{oppSvc: oppSvc}
}

// Create 发布机会
// POST /api/opportunities
func (h *OpportunityHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	opp, err := h.oppSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, opp)
}

// List 机会列表，status 默认 open
// GET /api/opportunities
func (h *OpportunityHandler) List(c *gin.Context) {
	var req dto.OpportunityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.oppSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 机会详情
// GET /api/opportunities/:id
func (h *OpportunityHandler) Get(c *gin.Context) {
	opp, err := h.oppSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, opp)
}

// Update 更新机会
// PUT /api/opportunities/:id
func (h *OpportunityHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	opp, err := h.oppSvc.Update(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, opp)
}

// UpdateStatus 修改机会状态
// PUT /api/opportunities/:id/status
func (h *OpportunityHandler) UpdateStatus(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateOpportunityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	opp, err := h.oppSvc.UpdateStatus(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, opp)
}
