package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/mail"
	"github.com/ezhulati/liftout-platform-sub008/pkg/token"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Team        TeamService
	Company     CompanyService
	Opportunity OpportunityService
	Matching    MatchingService
	Invitation  InvitationService
	Application ApplicationService
	Interview   InterviewService
	Audit       AuditService
	Admin       AdminService
	Export      ExportService
}

// Deps 外部依赖；Blacklist 为空表示未启用 Redis
type Deps struct {
	Repo      *repository.Repository
	JWT       *jwt.Manager
	Mailer    mail.Mailer
	Blacklist TokenBlacklist
	Logger    *zap.Logger
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, deps Deps) (*Service, error) {
	teamScorer, oppScorer, err := NewScorers(&cfg.Matching)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	audit := NewAuditService(deps.Repo, logger)
	notifier := newNotifier(deps.Mailer, cfg.Server.BaseURL, cfg.Mail.MaxConcurrency, logger)
	matcher := NewMatchingService(deps.Repo, teamScorer, oppScorer, &cfg.Matching, logger)

	return &Service{
		Auth:        NewAuthService(cfg, deps.Repo, deps.JWT, deps.Blacklist, logger),
		Team:        NewTeamService(deps.Repo, audit, logger),
		Company:     NewCompanyService(deps.Repo, logger),
		Opportunity: NewOpportunityService(deps.Repo, audit, logger),
		Matching:    matcher,
		Invitation:  NewInvitationService(&cfg.Invitation, deps.Repo, token.New(cfg.Invitation.TokenBytes), notifier, audit, logger),
		Application: NewApplicationService(deps.Repo, teamScorer, audit, logger),
		Interview:   NewInterviewService(deps.Repo, notifier, audit, logger),
		Audit:       audit,
		Admin:       NewAdminService(deps.Repo, deps.Blacklist, cfg.Auth.AccessTokenTTL, audit, logger),
		Export:      NewExportService(deps.Repo, teamScorer, logger),
	}, nil
}

// NewScorers 按配置构造两套评分器：为机会挑团队、为团队挑机会
func NewScorers(cfg *config.MatchingConfig) (team, opportunity *matching.Scorer, err error) {
	thresholds := matching.Thresholds{
		Excellent: cfg.Thresholds.Excellent,
		Good:      cfg.Thresholds.Good,
		Fair:      cfg.Thresholds.Fair,
	}

	teamWeights := matching.DefaultTeamWeights()
	if len(cfg.TeamWeights) > 0 {
		if teamWeights, err = matching.ParseWeights(cfg.TeamWeights); err != nil {
			return nil, nil, fmt.Errorf("matching.team_weights: %w", err)
		}
	}
	oppWeights := matching.DefaultOpportunityWeights()
	if len(cfg.OpportunityWeights) > 0 {
		if oppWeights, err = matching.ParseWeights(cfg.OpportunityWeights); err != nil {
			return nil, nil, fmt.Errorf("matching.opportunity_weights: %w", err)
		}
	}

	team = matching.NewScorer(matching.Config{Weights: teamWeights, Thresholds: thresholds})
	opportunity = matching.NewScorer(matching.Config{Weights: oppWeights, Thresholds: thresholds})
	return team, opportunity, nil
}

// utcNow 统一使用 UTC，保证 SQLite 文本时间比较有序
func utcNow() time.Time {
	return time.Now().UTC()
}

// formatTime RFC3339 输出；零值返回空串
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
