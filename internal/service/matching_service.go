package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// MatchingService 匹配评分业务接口
type MatchingService interface {
	// MatchTeams 为机会挑选可见团队，按总分降序
	MatchTeams(ctx context.Context, p *auth.Principal, req *dto.TeamMatchRequest) (*dto.TeamMatchesResponse, error)
	// MatchOpportunities 为团队挑选 open 机会，按总分降序
	MatchOpportunities(ctx context.Context, p *auth.Principal, req *dto.OpportunityMatchRequest) (*dto.OpportunityMatchesResponse, error)
}

type matchingService struct {
	repo       *repository.Repository
	teamScorer *matching.Scorer
	oppScorer  *matching.Scorer
	cfg        *config.MatchingConfig
	logger     *zap.Logger
}

// NewMatchingService 创建 MatchingService 实例
func NewMatchingService(
	repo *repository.Repository,
	teamScorer, oppScorer *matching.Scorer,
	cfg *config.MatchingConfig,
	logger *zap.Logger,
) MatchingService {
	return &matchingService{
		repo:       repo,
		teamScorer: teamScorer,
		oppScorer:  oppScorer,
		cfg:        cfg,
		logger:     logger,
	}
}

// ────────────────────── MatchTeams ──────────────────────

func (s *matchingService) MatchTeams(ctx context.Context, p *auth.Principal, req *dto.TeamMatchRequest) (*dto.TeamMatchesResponse, error) {
	opp, err := s.repo.Opportunity.GetByID(ctx, req.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		s.logger.Error("查询机会失败", zap.String("opportunity_id", req.OpportunityID), zap.Error(err))
		return nil, err
	}
	if err := requireCompanyMember(ctx, s.repo, p, opp.CompanyID); err != nil {
		return nil, err
	}

	teams, err := s.repo.Team.ListVisibleWithMembers(ctx)
	if err != nil {
		s.logger.Error("查询候选团队失败", zap.Error(err))
		return nil, err
	}

	minScore, limit := s.bounds(req.MinScore, req.Limit)
	oppProfile := opportunityProfile(opp)

	type scored struct {
		idx   int
		score matching.MatchScore
	}
	hits := make([]scored, 0, len(teams))
	for i := range teams {
		sc := s.teamScorer.Score(teamProfile(&teams[i]), oppProfile)
		if sc.Total >= minScore {
			hits = append(hits, scored{idx: i, score: sc})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].score.Total != hits[b].score.Total {
			return hits[a].score.Total > hits[b].score.Total
		}
		return strings.ToLower(teams[hits[a].idx].Name) < strings.ToLower(teams[hits[b].idx].Name)
	})

	total := len(hits)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	resp := &dto.TeamMatchesResponse{Matches: make([]dto.TeamMatch, 0, len(hits)), Total: total}
	for _, h := range hits {
		resp.Matches = append(resp.Matches, dto.TeamMatch{
			Team:  toTeamResponse(&teams[h.idx]),
			Score: toMatchScoreResponse(h.score),
		})
	}
	return resp, nil
}

// ────────────────────── MatchOpportunities ──────────────────────

func (s *matchingService) MatchOpportunities(ctx context.Context, p *auth.Principal, req *dto.OpportunityMatchRequest) (*dto.OpportunityMatchesResponse, error) {
	team, err := loadTeam(ctx, s.repo, s.logger, req.TeamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamMember(ctx, s.repo, p, team.TeamID); err != nil {
		return nil, err
	}

	opps, err := s.repo.Opportunity.ListOpenWithCompany(ctx)
	if err != nil {
		s.logger.Error("查询候选机会失败", zap.Error(err))
		return nil, err
	}

	minScore, limit := s.bounds(req.MinScore, req.Limit)
	tp := teamProfile(team)

	type scored struct {
		idx   int
		score matching.MatchScore
	}
	hits := make([]scored, 0, len(opps))
	for i := range opps {
		sc := s.oppScorer.Score(tp, opportunityProfile(&opps[i]))
		if sc.Total >= minScore {
			hits = append(hits, scored{idx: i, score: sc})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].score.Total != hits[b].score.Total {
			return hits[a].score.Total > hits[b].score.Total
		}
		return strings.ToLower(opps[hits[a].idx].Title) < strings.ToLower(opps[hits[b].idx].Title)
	})

	total := len(hits)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	resp := &dto.OpportunityMatchesResponse{Matches: make([]dto.OpportunityMatch, 0, len(hits)), Total: total}
	for _, h := range hits {
		resp.Matches = append(resp.Matches, dto.OpportunityMatch{
			Opportunity: toOpportunityResponse(&opps[h.idx]),
			Score:       toMatchScoreResponse(h.score),
		})
	}
	return resp, nil
}

// bounds 解析 minScore / limit：缺省 0 与配置默认值，limit 不超过配置上限
func (s *matchingService) bounds(minScore, limit *int) (int, int) {
	min := 0
	if minScore != nil {
		min = max(0, *minScore)
	}

	n := s.cfg.DefaultLimit
	if n <= 0 {
		n = 20
	}
	if limit != nil && *limit > 0 {
		n = *limit
	}
	if s.cfg.MaxLimit > 0 && n > s.cfg.MaxLimit {
		n = s.cfg.MaxLimit
	}
	return min, n
}
