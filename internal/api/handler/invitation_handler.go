package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// InvitationHandler 邀请模块 HTTP 处理器
type InvitationHandler struct {
	inviteSvc service.InvitationService
}

// NewInvitationHandler 创建 InvitationHandler
func NewInvitationHandler(inviteSvc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{inviteSvc: inviteSvc}
}

// InviteToTeam 发出团队邀请
// POST /api/teams/:id/invitations
func (h *InvitationHandler) InviteToTeam(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.inviteSvc.InviteToTeam(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, inv)
}

// ListTeam 团队的待处理邀请
// GET /api/teams/:id/invitations
func (h *InvitationHandler) ListTeam(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	list, err := h.inviteSvc.ListTeamInvitations(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// InviteToCompany 发出公司邀请
// POST /api/companies/invitations
func (h *InvitationHandler) InviteToCompany(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.inviteSvc.InviteToCompany(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, inv)
}

// ListCompany 调用者公司的待处理邀请
// GET /api/companies/invitations
func (h *InvitationHandler) ListCompany(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	list, err := h.inviteSvc.ListCompanyInvitations(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// Lookup 查看邀请（无需登录）
// GET /api/invites/:token
func (h *InvitationHandler) Lookup(c *gin.Context) {
	inv, err := h.inviteSvc.Lookup(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, inv)
}

// Respond 接受或拒绝邀请；接受需要登录，拒绝不需要
// POST /api/invites/:token
func (h *InvitationHandler) Respond(c *gin.Context) {
	var req dto.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16003, service.ErrInvalidAction.Error())
		return
	}

	result, err := h.inviteSvc.Respond(c.Request.Context(), OptionalPrincipal(c), c.Param("token"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}
