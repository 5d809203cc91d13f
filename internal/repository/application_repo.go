package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
)

// ApplicationRepository 团队申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.TeamApplication) error
	// GetByID 返回申请及其团队（含成员）、机会（含公司）
	GetByID(ctx context.Context, id string) (*model.TeamApplication, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.TeamApplication, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]model.TeamApplication, error)
	// Transition 条件更新：当前状态不在 from 中时返回 ErrStaleState
	Transition(ctx context.Context, id string, from []string, to string, fields map[string]interface{}) error
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.TeamApplication) error {
	return r.db.WithContext(ctx).Omit("Team", "Opportunity").Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.TeamApplication, error) {
	var app model.TeamApplication
	err := r.db.WithContext(ctx).
		Preload("Team.Members").
		Preload("Opportunity.Company").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) ListByTeam(ctx context.Context, teamID string) ([]model.TeamApplication, error) {
	var list []model.TeamApplication
	err := r.db.WithContext(ctx).
		Preload("Opportunity.Company").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *applicationRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]model.TeamApplication, error) {
	var list []model.TeamApplication
	err := r.db.WithContext(ctx).
		Preload("Team.Members").
		Where("opportunity_id = ?", opportunityID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *applicationRepo) Transition(ctx context.Context, id string, from []string, to string, fields map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range fields {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&model.TeamApplication{}).
		Where("application_id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrStaleState
	}
	return nil
}
