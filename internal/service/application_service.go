package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// dateLayout Offer 入职日期格式
const dateLayout = "2006-01-02"

// ApplicationService 申请与 Offer 业务接口
type ApplicationService interface {
	Create(ctx context.Context, p *auth.Principal, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	List(ctx context.Context, p *auth.Principal, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, error)
	Get(ctx context.Context, p *auth.Principal, id string) (*dto.ApplicationResponse, error)
	// UpdateStatus 公司方：submitted → reviewing，submitted/reviewing/interviewing → rejected
	UpdateStatus(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	// Withdraw 团队方撤回未结束的申请
	Withdraw(ctx context.Context, p *auth.Principal, id string) (*dto.ApplicationResponse, error)
	MakeOffer(ctx context.Context, p *auth.Principal, id string, req *dto.MakeOfferRequest) (*dto.ApplicationResponse, error)
	// RespondOffer 接受后机会同步置为 filled
	RespondOffer(ctx context.Context, p *auth.Principal, id string, req *dto.RespondOfferRequest) (*dto.ApplicationResponse, error)
}

// applicationTransitions 公司方可直接设置的状态及其来源状态
var applicationTransitions = map[string][]string{
	model.ApplicationStatusReviewing: {model.ApplicationStatusSubmitted},
	model.ApplicationStatusRejected: {
		model.ApplicationStatusSubmitted,
		model.ApplicationStatusReviewing,
		model.ApplicationStatusInterviewing,
	},
}

var offerFromStatuses = []string{model.ApplicationStatusReviewing, model.ApplicationStatusInterviewing}

type applicationService struct {
	repo   *repository.Repository
	scorer *matching.Scorer
	audit  AuditService
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, scorer *matching.Scorer, audit AuditService, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, scorer: scorer, audit: audit, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *applicationService) Create(ctx context.Context, p *auth.Principal, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if _, err := loadTeam(ctx, s.repo, s.logger, req.TeamID); err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, req.TeamID); err != nil {
		return nil, err
	}

	opp, err := s.repo.Opportunity.GetByID(ctx, req.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		s.logger.Error("查询机会失败", zap.String("opportunity_id", req.OpportunityID), zap.Error(err))
		return nil, err
	}
	if opp.Status != model.OpportunityStatusOpen {
		return nil, ErrOpportunityNotOpen
	}

	app := &model.TeamApplication{
		TeamID:        req.TeamID,
		OpportunityID: req.OpportunityID,
		Status:        model.ApplicationStatusSubmitted,
		CoverLetter:   strings.TrimSpace(req.CoverLetter),
		SubmittedBy:   p.UserID,
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrApplicationExists
		}
		s.logger.Error("创建申请失败", zap.String("team_id", req.TeamID), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditApplicationCreated,
		EntityType: "application",
		EntityID:   app.ApplicationID,
		Metadata:   map[string]interface{}{"teamId": req.TeamID, "opportunityId": req.OpportunityID},
	})
	return s.reload(ctx, app.ApplicationID)
}

// ────────────────────── Query ──────────────────────

func (s *applicationService) List(ctx context.Context, p *auth.Principal, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, error) {
	var (
		apps []model.TeamApplication
		err  error
	)
	switch {
	case req.TeamID != "":
		if _, err := loadTeam(ctx, s.repo, s.logger, req.TeamID); err != nil {
			return nil, err
		}
		if err := requireTeamMember(ctx, s.repo, p, req.TeamID); err != nil {
			return nil, err
		}
		apps, err = s.repo.Application.ListByTeam(ctx, req.TeamID)
	case req.OpportunityID != "":
		opp, oppErr := s.repo.Opportunity.GetByID(ctx, req.OpportunityID)
		if oppErr != nil {
			if errors.Is(oppErr, gorm.ErrRecordNotFound) {
				return nil, ErrOpportunityNotFound
			}
			return nil, oppErr
		}
		if err := requireCompanyMember(ctx, s.repo, p, opp.CompanyID); err != nil {
			return nil, err
		}
		apps, err = s.repo.Application.ListByOpportunity(ctx, req.OpportunityID)
	default:
		return nil, ErrListScopeRequired
	}
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		list = append(list, toApplicationResponse(&apps[i]))
	}
	return list, nil
}

func (s *applicationService) Get(ctx context.Context, p *auth.Principal, id string) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireEitherSide(ctx, p, app); err != nil {
		return nil, err
	}

	resp := toApplicationResponse(app)
	if app.Team != nil && app.Opportunity != nil {
		score := toMatchScoreResponse(s.scorer.Score(teamProfile(app.Team), opportunityProfile(app.Opportunity)))
		resp.Score = &score
	}
	return &resp, nil
}

// ────────────────────── 状态流转 ──────────────────────

func (s *applicationService) UpdateStatus(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompanySide(ctx, p, app); err != nil {
		return nil, err
	}

	from, ok := applicationTransitions[req.Status]
	if !ok {
		return nil, ErrInvalidTransition
	}
	if err := s.transition(ctx, p, app, from, req.Status, nil); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *applicationService) Withdraw(ctx context.Context, p *auth.Principal, id string) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, app.TeamID); err != nil {
		return nil, err
	}

	if err := s.transition(ctx, p, app, model.ActiveApplicationStatuses, model.ApplicationStatusWithdrawn, nil); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *applicationService) MakeOffer(ctx context.Context, p *auth.Principal, id string, req *dto.MakeOfferRequest) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompanySide(ctx, p, app); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"offer_compensation": req.Compensation,
		"offer_message":      strings.TrimSpace(req.Message),
		"offer_made_at":      utcNow(),
	}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
		if err != nil {
			return nil, ErrInvalidStartDate
		}
		fields["offer_start_date"] = start
	}

	if err := s.transition(ctx, p, app, offerFromStatuses, model.ApplicationStatusOfferMade, fields); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *applicationService) RespondOffer(ctx context.Context, p *auth.Principal, id string, req *dto.RespondOfferRequest) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, app.TeamID); err != nil {
		return nil, err
	}

	from := []string{model.ApplicationStatusOfferMade}
	fields := map[string]interface{}{"responded_at": utcNow()}

	switch req.Action {
	case InvitationActionAccept:
		if !containsString(from, app.Status) {
			return nil, ErrInvalidTransition
		}
		// 申请 accepted 与机会 filled 同一事务；机会已非 open 时整体回滚
		err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			if err := tx.Application.Transition(ctx, id, from, model.ApplicationStatusAccepted, fields); err != nil {
				return err
			}
			return tx.Opportunity.TransitionStatus(ctx, app.OpportunityID,
				[]string{model.OpportunityStatusOpen}, model.OpportunityStatusFilled)
		})
		if err != nil {
			if !errors.Is(err, ErrStaleState) {
				s.logger.Error("接受 Offer 失败", zap.String("application_id", id), zap.Error(err))
			}
			return nil, err
		}
		s.recordTransition(ctx, p, app, model.ApplicationStatusAccepted)
		s.audit.Record(ctx, AuditEntry{
			ActorID:    p.UserID,
			Action:     model.AuditOpportunityStatus,
			EntityType: "opportunity",
			EntityID:   app.OpportunityID,
			Metadata:   map[string]interface{}{"from": model.OpportunityStatusOpen, "to": model.OpportunityStatusFilled},
		})
	case InvitationActionDecline:
		if err := s.transition(ctx, p, app, from, model.ApplicationStatusRejected, fields); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidAction
	}
	return s.reload(ctx, id)
}

// transition 先按当前状态判定是否允许，再执行条件更新；并发修改返回 ErrStaleState
func (s *applicationService) transition(ctx context.Context, p *auth.Principal, app *model.TeamApplication, from []string, to string, fields map[string]interface{}) error {
	if !containsString(from, app.Status) {
		return ErrInvalidTransition
	}
	if err := s.repo.Application.Transition(ctx, app.ApplicationID, from, to, fields); err != nil {
		if !errors.Is(err, ErrStaleState) {
			s.logger.Error("更新申请状态失败", zap.String("application_id", app.ApplicationID), zap.Error(err))
		}
		return err
	}
	s.recordTransition(ctx, p, app, to)
	return nil
}

func (s *applicationService) recordTransition(ctx context.Context, p *auth.Principal, app *model.TeamApplication, to string) {
	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditApplicationStatus,
		EntityType: "application",
		EntityID:   app.ApplicationID,
		Metadata:   map[string]interface{}{"from": app.Status, "to": to},
	})
}

// ── 权限 ──

func (s *applicationService) requireCompanySide(ctx context.Context, p *auth.Principal, app *model.TeamApplication) error {
	if app.Opportunity == nil {
		return ErrOpportunityNotFound
	}
	return requireCompanyMember(ctx, s.repo, p, app.Opportunity.CompanyID)
}

// requireEitherSide 团队成员或机会所属公司成员均可查看
func (s *applicationService) requireEitherSide(ctx context.Context, p *auth.Principal, app *model.TeamApplication) error {
	err := requireTeamMember(ctx, s.repo, p, app.TeamID)
	if err == nil || !errors.Is(err, ErrForbidden) {
		return err
	}
	return s.requireCompanySide(ctx, p, app)
}

// ── 内部辅助方法 ──

func (s *applicationService) load(ctx context.Context, id string) (*model.TeamApplication, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("application_id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

func (s *applicationService) reload(ctx context.Context, id string) (*dto.ApplicationResponse, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}
