package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// errorMapping 业务错误 → HTTP 状态码与业务码
type errorMapping struct {
	err    error
	status int
	code   int
}

// 错误码分段：11xxx 认证，12xxx 团队，13xxx 公司，14xxx 机会，
// 15xxx 申请，16xxx 邀请，17xxx 面试，19xxx 通用
var errorMappings = []errorMapping{
	// 认证
	{service.ErrInvalidCredentials, http.StatusUnauthorized, 11001},
	{service.ErrInvalidToken, http.StatusUnauthorized, 11002},
	{service.ErrUserSuspended, http.StatusForbidden, 11003},
	{service.ErrEmailTaken, http.StatusConflict, 11004},
	{service.ErrCompanyNameRequired, http.StatusBadRequest, 11005},
	{service.ErrUserNotFound, http.StatusNotFound, 11006},

	// 团队
	{service.ErrTeamNotFound, http.StatusNotFound, 12001},
	{service.ErrMemberNotFound, http.StatusNotFound, 12002},
	{service.ErrCannotRemoveOwner, http.StatusForbidden, 12003},
	{service.ErrIndividualOnly, http.StatusForbidden, 12004},

	// 公司
	{service.ErrCompanyNotFound, http.StatusNotFound, 13001},
	{service.ErrNotCompanyMember, http.StatusForbidden, 13002},

	// 机会
	{service.ErrOpportunityNotFound, http.StatusNotFound, 14001},
	{service.ErrOpportunityNotOpen, http.StatusConflict, 14002},

	// 申请与 Offer
	{service.ErrApplicationNotFound, http.StatusNotFound, 15001},
	{service.ErrApplicationExists, http.StatusConflict, 15002},
	{service.ErrListScopeRequired, http.StatusBadRequest, 15003},
	{service.ErrInvalidStartDate, http.StatusBadRequest, 15004},

	// 邀请
	{service.ErrInvitationNotFound, http.StatusNotFound, 16001},
	{service.ErrInvitationExpired, http.StatusGone, 16002},
	{service.ErrInvalidAction, http.StatusBadRequest, 16003},
	{service.ErrInviteEmailMismatch, http.StatusForbidden, 16004},
	{service.ErrAlreadyMember, http.StatusConflict, 16005},
	{service.ErrDuplicateInvitation, http.StatusConflict, 16006},
	{service.ErrInvalidRole, http.StatusBadRequest, 16007},

	// 面试
	{service.ErrInterviewNotFound, http.StatusNotFound, 17001},
	{service.ErrInvalidSchedule, http.StatusBadRequest, 17002},

	// 通用
	{service.ErrForbidden, http.StatusForbidden, 10003},
	{service.ErrInvalidRange, http.StatusBadRequest, 19001},
	{service.ErrInvalidTransition, http.StatusConflict, 19002},
	{service.ErrStaleState, http.StatusConflict, 19003},
}

// handleServiceError 将 Service 层错误写为响应
// 未识别的错误记入 c.Errors（由日志中间件输出），客户端只看到通用 500
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAuthRequired) {
		response.AuthRequired(c, 16008, err.Error())
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, m.err.Error())
			return
		}
	}
	_ = c.Error(err)
	response.InternalError(c)
}

// bindError 参数校验失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Invalid request parameters", err.Error())
}
