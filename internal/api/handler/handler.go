package handler

import (
	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Team        *TeamHandler
	Company     *CompanyHandler
	Opportunity *OpportunityHandler
	Matching    *MatchingHandler
	Invitation  *InvitationHandler
	Application *ApplicationHandler
	Interview   *InterviewHandler
	Admin       *AdminHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, &cfg.Auth),
		Team:        NewTeamHandler(svc.Team),
		Company:     NewCompanyHandler(svc.Company),
		Opportunity: NewOpportunityHandler(svc.Opportunity),
		Matching:    NewMatchingHandler(svc.Matching),
		Invitation:  NewInvitationHandler(svc.Invitation),
		Application: NewApplicationHandler(svc.Application),
		Interview:   NewInterviewHandler(svc.Interview),
		Admin:       NewAdminHandler(svc.Admin, svc.Audit),
		Export:      NewExportHandler(svc.Export),
	}
}
