package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// ── 权限辅助 ──
// 管理员对团队 / 公司资源拥有全部权限。

// loadTeam 查询团队，不存在时返回 ErrTeamNotFound
func loadTeam(ctx context.Context, repo *repository.Repository, logger *zap.Logger, teamID string) (*model.Team, error) {
	team, err := repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		logger.Error("查询团队失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	return team, nil
}

// activeTeamMember 调用者在团队中的活跃成员记录；非成员返回 nil
func activeTeamMember(ctx context.Context, repo *repository.Repository, teamID, userID string) (*model.TeamMember, error) {
	m, err := repo.TeamMember.GetActive(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// requireTeamMember 调用者必须是团队活跃成员
func requireTeamMember(ctx context.Context, repo *repository.Repository, p *auth.Principal, teamID string) error {
	if p.IsAdmin() {
		return nil
	}
	m, err := activeTeamMember(ctx, repo, teamID, p.UserID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrForbidden
	}
	return nil
}

// requireTeamManager 调用者必须是团队 owner / admin
func requireTeamManager(ctx context.Context, repo *repository.Repository, p *auth.Principal, teamID string) error {
	if p.IsAdmin() {
		return nil
	}
	m, err := activeTeamMember(ctx, repo, teamID, p.UserID)
	if err != nil {
		return err
	}
	if m == nil || !m.CanManage() {
		return ErrForbidden
	}
	return nil
}

// callerCompany 调用者所属的公司成员记录
func callerCompany(ctx context.Context, repo *repository.Repository, p *auth.Principal) (*model.CompanyUser, error) {
	cu, err := repo.CompanyUser.GetActiveByUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCompanyMember
		}
		return nil, err
	}
	return cu, nil
}

// requireCompanyMember 调用者必须是该公司活跃成员
func requireCompanyMember(ctx context.Context, repo *repository.Repository, p *auth.Principal, companyID string) error {
	if p.IsAdmin() {
		return nil
	}
	_, err := repo.CompanyUser.GetActiveMember(ctx, companyID, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	return nil
}
