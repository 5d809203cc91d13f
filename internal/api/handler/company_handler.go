package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// CompanyHandler 公司模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// GetMine 调用者所属公司
// GET /api/companies/me
func (h *CompanyHandler) GetMine(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	company, err := h.companySvc.GetMine(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, company)
}

// UpdateMine 更新公司资料
// PUT /api/companies/me
func (h *CompanyHandler) UpdateMine(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companySvc.UpdateMine(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, company)
}

// Members 公司成员
// GET /api/companies/users
func (h *CompanyHandler) Members(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	members, err := h.companySvc.ListMembers(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, members)
}
