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

// TeamService 团队业务接口
type TeamService interface {
	Create(ctx context.Context, p *auth.Principal, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	List(ctx context.Context, req *dto.TeamListRequest) ([]dto.TeamResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.TeamResponse, error)
	Update(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	ListMine(ctx context.Context, p *auth.Principal) ([]dto.TeamResponse, error)
	ListMembers(ctx context.Context, teamID string) ([]dto.TeamMemberResponse, error)
	UpdateMyMembership(ctx context.Context, p *auth.Principal, teamID string, req *dto.UpdateMyMembershipRequest) (*dto.TeamMemberResponse, error)
	RemoveMember(ctx context.Context, p *auth.Principal, teamID, memberID string) error
}

type teamService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, audit AuditService, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, audit: audit, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teamService) Create(ctx context.Context, p *auth.Principal, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if p.UserType != model.UserTypeIndividual && !p.IsAdmin() {
		return nil, ErrIndividualOnly
	}
	if req.CompensationMax > 0 && req.CompensationMin > req.CompensationMax {
		return nil, ErrInvalidRange
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	team := &model.Team{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Industry:         strings.TrimSpace(req.Industry),
		Specialization:   req.Specialization,
		Location:         strings.TrimSpace(req.Location),
		Size:             req.Size,
		Skills:           model.StringArray(cleanSkills(req.Skills)),
		CompensationMin:  req.CompensationMin,
		CompensationMax:  req.CompensationMax,
		YearsTogether:    req.YearsTogether,
		Availability:     req.Availability,
		OpenToRelocation: req.OpenToRelocation,
		Visible:          visible,
		CreatedBy:        p.UserID,
	}

	// 团队与创建者 owner 身份同一事务
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Team.Create(ctx, team); err != nil {
			return err
		}
		now := utcNow()
		return tx.TeamMember.Create(ctx, &model.TeamMember{
			TeamID:   team.TeamID,
			UserID:   &p.UserID,
			Role:     model.TeamRoleOwner,
			Status:   model.MemberStatusActive,
			JoinedAt: &now,
		})
	})
	if err != nil {
		s.logger.Error("创建团队失败", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, team.TeamID)
}

// ────────────────────── Query ──────────────────────

func (s *teamService) List(ctx context.Context, req *dto.TeamListRequest) ([]dto.TeamResponse, int64, error) {
	teams, total, err := s.repo.Team.List(ctx,
		repository.TeamFilter{Industry: req.Industry, Location: req.Location},
		repository.Pagination{Offset: req.GetOffset(), Limit: req.GetPageSize()},
	)
	if err != nil {
		s.logger.Error("查询团队列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		list = append(list, toTeamResponse(&teams[i]))
	}
	return list, total, nil
}

func (s *teamService) Get(ctx context.Context, id string) (*dto.TeamResponse, error) {
	team, err := loadTeam(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	resp := toTeamResponse(team)
	return &resp, nil
}

func (s *teamService) ListMine(ctx context.Context, p *auth.Principal) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.ListByMember(ctx, p.UserID)
	if err != nil {
		s.logger.Error("查询我的团队失败", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, err
	}
	list := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		list = append(list, toTeamResponse(&teams[i]))
	}
	return list, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID string) ([]dto.TeamMemberResponse, error) {
	if _, err := loadTeam(ctx, s.repo, s.logger, teamID); err != nil {
		return nil, err
	}
	members, err := s.repo.TeamMember.ListActive(ctx, teamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	list := make([]dto.TeamMemberResponse, 0, len(members))
	for i := range members {
		list = append(list, toTeamMemberResponse(&members[i]))
	}
	return list, nil
}

// ────────────────────── Update ──────────────────────

func (s *teamService) Update(ctx context.Context, p *auth.Principal, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := loadTeam(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, id); err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Industry != nil {
		team.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Specialization != nil {
		team.Specialization = *req.Specialization
	}
	if req.Location != nil {
		team.Location = strings.TrimSpace(*req.Location)
	}
	if req.Size != nil {
		team.Size = *req.Size
	}
	if req.Skills != nil {
		team.Skills = model.StringArray(cleanSkills(*req.Skills))
	}
	if req.CompensationMin != nil {
		team.CompensationMin = *req.CompensationMin
	}
	if req.CompensationMax != nil {
		team.CompensationMax = *req.CompensationMax
	}
	if req.YearsTogether != nil {
		team.YearsTogether = *req.YearsTogether
	}
	if req.Availability != nil {
		team.Availability = *req.Availability
	}
	if req.OpenToRelocation != nil {
		team.OpenToRelocation = *req.OpenToRelocation
	}
	if req.Visible != nil {
		team.Visible = *req.Visible
	}
	if team.CompensationMax > 0 && team.CompensationMin > team.CompensationMax {
		return nil, ErrInvalidRange
	}

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("更新团队失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *teamService) UpdateMyMembership(ctx context.Context, p *auth.Principal, teamID string, req *dto.UpdateMyMembershipRequest) (*dto.TeamMemberResponse, error) {
	if _, err := loadTeam(ctx, s.repo, s.logger, teamID); err != nil {
		return nil, err
	}
	member, err := activeTeamMember(ctx, s.repo, teamID, p.UserID)
	if err != nil {
		s.logger.Error("查询成员失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	skills := model.StringArray(cleanSkills(req.Skills))
	title := strings.TrimSpace(req.Title)
	if err := s.repo.TeamMember.UpdateProfile(ctx, member.TeamMemberID, title, skills); err != nil {
		s.logger.Error("更新成员资料失败", zap.String("member_id", member.TeamMemberID), zap.Error(err))
		return nil, err
	}

	member.Title = title
	member.Skills = skills
	resp := toTeamMemberResponse(member)
	return &resp, nil
}

// ────────────────────── RemoveMember ──────────────────────

func (s *teamService) RemoveMember(ctx context.Context, p *auth.Principal, teamID, memberID string) error {
	if _, err := loadTeam(ctx, s.repo, s.logger, teamID); err != nil {
		return err
	}

	member, err := s.repo.TeamMember.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("查询成员失败", zap.String("member_id", memberID), zap.Error(err))
		return err
	}
	if member.TeamID != teamID {
		return ErrMemberNotFound
	}

	// 成员可以自行退出；移除他人需要管理权限
	self := member.UserID != nil && *member.UserID == p.UserID
	if !self {
		if err := requireTeamManager(ctx, s.repo, p, teamID); err != nil {
			return err
		}
	}
	if member.Role == model.TeamRoleOwner {
		return ErrCannotRemoveOwner
	}

	if err := s.repo.TeamMember.Delete(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("移除成员失败", zap.String("member_id", memberID), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditTeamMemberRemoved,
		EntityType: "team",
		EntityID:   teamID,
		Metadata:   map[string]interface{}{"memberId": memberID},
	})
	return nil
}

// cleanSkills 去除空白项并按大小写不敏感去重
func cleanSkills(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
