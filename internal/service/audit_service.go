package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
)

// AuditEntry 一条待写入的审计记录
type AuditEntry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]interface{}
}

// AuditService 审计日志接口
type AuditService interface {
	// Record 尽力写入，失败只记日志，不影响主流程
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService 创建 AuditService 实例
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	log := &model.AuditLog{
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   model.JSONMap(entry.Metadata),
		IP:         auth.ClientIP(ctx),
	}
	if entry.ActorID != "" {
		actor := entry.ActorID
		log.ActorID = &actor
	}

	if err := s.repo.AuditLog.Create(ctx, log); err != nil {
		s.logger.Error("写入审计日志失败",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

func (s *auditService) List(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error) {
	logs, total, err := s.repo.AuditLog.List(ctx,
		repository.AuditLogFilter{Action: req.Action, EntityType: req.EntityType, ActorID: req.ActorID},
		repository.Pagination{Offset: req.GetOffset(), Limit: req.GetPageSize()},
	)
	if err != nil {
		s.logger.Error("查询审计日志失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		item := dto.AuditLogResponse{
			ID:         l.AuditLogID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Metadata:   l.Metadata,
			IP:         l.IP,
			CreatedAt:  formatTime(l.CreatedAt),
		}
		if l.ActorID != nil {
			item.ActorID = *l.ActorID
		}
		list = append(list, item)
	}
	return list, total, nil
}
