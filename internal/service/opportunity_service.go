package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// OpportunityService 招聘机会业务接口
type OpportunityService interface {
	Create(ctx context.Context, p *auth.Principal, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error)
	List(ctx context.Context, req *dto.OpportunityListRequest) ([]dto.OpportunityResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.OpportunityResponse, error)
	Update(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error)
	UpdateStatus(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateOpportunityStatusRequest) (*dto.OpportunityResponse, error)
}

// opportunityTransitions 允许的状态流转：目标状态 → 允许的来源状态
var opportunityTransitions = map[string][]string{
	model.OpportunityStatusFilled: {model.OpportunityStatusOpen},
	model.OpportunityStatusClosed: {model.OpportunityStatusOpen},
	model.OpportunityStatusOpen:   {model.OpportunityStatusClosed},
}

type opportunityService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
}

// NewOpportunityService 创建 OpportunityService 实例
func NewOpportunityService(repo *repository.Repository, audit AuditService, logger *zap.Logger) OpportunityService {
	return &opportunityService{repo: repo, audit: audit, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *opportunityService) Create(ctx context.Context, p *auth.Principal, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if req.CompensationMax > 0 && req.CompensationMin > req.CompensationMax {
		return nil, ErrInvalidRange
	}
	if req.TeamSizeMax > 0 && req.TeamSizeMin > req.TeamSizeMax {
		return nil, ErrInvalidRange
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyMedium
	}
	opp := &model.Opportunity{
		CompanyID:       cu.CompanyID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Industry:        strings.TrimSpace(req.Industry),
		Location:        strings.TrimSpace(req.Location),
		Remote:          req.Remote,
		CompensationMin: req.CompensationMin,
		CompensationMax: req.CompensationMax,
		RequiredSkills:  model.StringArray(cleanSkills(req.RequiredSkills)),
		PreferredSkills: model.StringArray(cleanSkills(req.PreferredSkills)),
		TeamSizeMin:     req.TeamSizeMin,
		TeamSizeMax:     req.TeamSizeMax,
		Urgency:         urgency,
		Status:          model.OpportunityStatusOpen,
		CreatedBy:       p.UserID,
	}
	if err := s.repo.Opportunity.Create(ctx, opp); err != nil {
		s.logger.Error("创建机会失败", zap.String("company_id", cu.CompanyID), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, opp.OpportunityID)
}

// ────────────────────── Query ──────────────────────

func (s *opportunityService) List(ctx context.Context, req *dto.OpportunityListRequest) ([]dto.OpportunityResponse, int64, error) {
	status := req.Status
	switch status {
	case "":
		status = model.OpportunityStatusOpen
	case "all":
		status = ""
	}

	opps, total, err := s.repo.Opportunity.List(ctx,
		repository.OpportunityFilter{Status: status, Industry: req.Industry, Location: req.Location},
		repository.Pagination{Offset: req.GetOffset(), Limit: req.GetPageSize()},
	)
	if err != nil {
		s.logger.Error("查询机会列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.OpportunityResponse, 0, len(opps))
	for i := range opps {
		list = append(list, toOpportunityResponse(&opps[i]))
	}
	return list, total, nil
}

func (s *opportunityService) Get(ctx context.Context, id string) (*dto.OpportunityResponse, error) {
	opp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOpportunityResponse(opp)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *opportunityService) Update(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error) {
	opp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyMember(ctx, s.repo, p, opp.CompanyID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		opp.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.Industry != nil {
		opp.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Location != nil {
		opp.Location = strings.TrimSpace(*req.Location)
	}
	if req.Remote != nil {
		opp.Remote = *req.Remote
	}
	if req.CompensationMin != nil {
		opp.CompensationMin = *req.CompensationMin
	}
	if req.CompensationMax != nil {
		opp.CompensationMax = *req.CompensationMax
	}
	if req.RequiredSkills != nil {
		opp.RequiredSkills = model.StringArray(cleanSkills(*req.RequiredSkills))
	}
	if req.PreferredSkills != nil {
		opp.PreferredSkills = model.StringArray(cleanSkills(*req.PreferredSkills))
	}
	if req.TeamSizeMin != nil {
		opp.TeamSizeMin = *req.TeamSizeMin
	}
	if req.TeamSizeMax != nil {
		opp.TeamSizeMax = *req.TeamSizeMax
	}
	if req.Urgency != nil {
		opp.Urgency = *req.Urgency
	}
	if opp.CompensationMax > 0 && opp.CompensationMin > opp.CompensationMax {
		return nil, ErrInvalidRange
	}
	if opp.TeamSizeMax > 0 && opp.TeamSizeMin > opp.TeamSizeMax {
		return nil, ErrInvalidRange
	}

	if err := s.repo.Opportunity.Update(ctx, opp); err != nil {
		s.logger.Error("更新机会失败", zap.String("opportunity_id", id), zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *opportunityService) UpdateStatus(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateOpportunityStatusRequest) (*dto.OpportunityResponse, error) {
	opp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyMember(ctx, s.repo, p, opp.CompanyID); err != nil {
		return nil, err
	}

	from, ok := opportunityTransitions[req.Status]
	if !ok || !containsString(from, opp.Status) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.Opportunity.TransitionStatus(ctx, id, from, req.Status); err != nil {
		if !errors.Is(err, ErrStaleState) {
			s.logger.Error("更新机会状态失败", zap.String("opportunity_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditOpportunityStatus,
		EntityType: "opportunity",
		EntityID:   id,
		Metadata:   map[string]interface{}{"from": opp.Status, "to": req.Status},
	})
	return s.Get(ctx, id)
}

func (s *opportunityService) load(ctx context.Context, id string) (*model.Opportunity, error) {
	opp, err := s.repo.Opportunity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		s.logger.Error("查询机会失败", zap.String("opportunity_id", id), zap.Error(err))
		return nil, err
	}
	return opp, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
