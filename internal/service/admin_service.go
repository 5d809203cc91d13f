package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// AdminService 管理后台业务接口（调用方已由中间件校验为管理员）
type AdminService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	SuspendUser(ctx context.Context, p *auth.Principal, userID string, suspended bool) (*dto.UserResponse, error)
}

type adminService struct {
	repo      *repository.Repository
	blacklist TokenBlacklist
	accessTTL time.Duration
	audit     AuditService
	logger    *zap.Logger
}

// NewAdminService 创建 AdminService 实例；blacklist 为 nil 时封禁只拦截登录与刷新
func NewAdminService(repo *repository.Repository, blacklist TokenBlacklist, accessTTL time.Duration, audit AuditService, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, blacklist: blacklist, accessTTL: accessTTL, audit: audit, logger: logger}
}

func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := s.repo.Stats.Collect(ctx, utcNow())
	if err != nil {
		s.logger.Error("统计平台数据失败", zap.Error(err))
		return nil, err
	}
	return &dto.StatsResponse{
		UsersByType:           stats.UsersByType,
		Teams:                 stats.Teams,
		OpportunitiesByStatus: stats.OpportunitiesByStatus,
		ApplicationsByStatus:  stats.ApplicationsByStatus,
		PendingInvitations:    stats.PendingInvitations,
	}, nil
}

func (s *adminService) SuspendUser(ctx context.Context, p *auth.Principal, userID string, suspended bool) (*dto.UserResponse, error) {
	if p.UserID == userID && suspended {
		return nil, ErrForbidden
	}
	if err := s.repo.User.SetSuspended(ctx, userID, suspended); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新用户封禁状态失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.syncRevocation(ctx, userID, suspended)

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditUserSuspended,
		EntityType: "user",
		EntityID:   userID,
		Metadata:   map[string]interface{}{"suspended": suspended},
	})

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// syncRevocation 同步 Redis 中的用户级吊销；失败只记录日志，数据库状态为准
func (s *adminService) syncRevocation(ctx context.Context, userID string, suspended bool) {
	if s.blacklist == nil {
		return
	}
	var err error
	if suspended {
		err = s.blacklist.RevokeUser(ctx, userID, s.accessTTL)
	} else {
		err = s.blacklist.RestoreUser(ctx, userID)
	}
	if err != nil {
		s.logger.Warn("同步用户吊销状态失败", zap.String("user_id", userID), zap.Bool("suspended", suspended), zap.Error(err))
	}
}
