package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/response"
)

// InterviewHandler 面试模块 HTTP 处理器
type InterviewHandler struct {
	interviewSvc service.InterviewService
}

// NewInterviewHandler 创建 InterviewHandler
func NewInterviewHandler(interviewSvc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// Schedule 安排面试并发送日历邀请
// POST /api/applications/:id/interviews
func (h *InterviewHandler) Schedule(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.interviewSvc.Schedule(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, result)
}

// List 申请下的面试
// GET /api/applications/:id/interviews
func (h *InterviewHandler) List(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	list, err := h.interviewSvc.List(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// Calendar 下载 .ics
// GET /api/interviews/:id/calendar.ics
func (h *InterviewHandler) Calendar(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	ics, err := h.interviewSvc.Calendar(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="interview.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8; method=REQUEST", ics)
}
