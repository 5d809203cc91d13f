package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// MatchingHandler 匹配评分 HTTP 处理器
type MatchingHandler struct {
	matchSvc service.MatchingService
}

// NewMatchingHandler 创建 MatchingHandler
func NewMatchingHandler(matchSvc service.MatchingService) *MatchingHandler {
	return &MatchingHandler{matchSvc: matchSvc}
}

// Teams 为机会挑选团队
// GET /api/matching/teams?opportunityId=&minScore=&limit=
func (h *MatchingHandler) Teams(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.TeamMatchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.matchSvc.MatchTeams(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Opportunities 为团队挑选机会
// GET /api/matching/opportunities?teamId=&minScore=&limit=
func (h *MatchingHandler) Opportunities(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.OpportunityMatchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.matchSvc.MatchOpportunities(c.Request.Context(), p, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}
