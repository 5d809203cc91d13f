package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
)

// OpportunityFilter 机会列表筛选
type OpportunityFilter struct {
	Status    string
	Industry  string
	Location  string
	CompanyID string
}

// OpportunityRepository 招聘机会数据访问接口
type OpportunityRepository interface {
	Create(ctx context.Context, opp *model.Opportunity) error
	GetByID(ctx context.Context, id string) (*model.Opportunity, error)
	Update(ctx context.Context, opp *model.Opportunity) error
	List(ctx context.Context, filter OpportunityFilter, page Pagination) ([]model.Opportunity, int64, error)
	// ListOpenWithCompany 匹配评分用：全部 open 机会（含公司）
	ListOpenWithCompany(ctx context.Context) ([]model.Opportunity, error)
	// TransitionStatus 条件更新状态：当前状态不在 from 中时返回 ErrStaleState
	TransitionStatus(ctx context.Context, id string, from []string, to string) error
}

type opportunityRepo struct {
	db *gorm.DB
}

// NewOpportunityRepo 创建 OpportunityRepository 实例
func NewOpportunityRepo(db *gorm.DB) OpportunityRepository {
	return &opportunityRepo{db: db}
}

func (r *opportunityRepo) Create(ctx context.Context, opp *model.Opportunity) error {
	return r.db.WithContext(ctx).Omit("Company").Create(opp).Error
}

func (r *opportunityRepo) GetByID(ctx context.Context, id string) (*model.Opportunity, error) {
	var opp model.Opportunity
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("opportunity_id = ?", id).
		First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// Update 更新可编辑字段（状态走 TransitionStatus）
func (r *opportunityRepo) Update(ctx context.Context, opp *model.Opportunity) error {
	return r.db.WithContext(ctx).
		Model(&model.Opportunity{OpportunityID: opp.OpportunityID}).
		Updates(map[string]interface{}{
			"title":            opp.Title,
			"description":      opp.Description,
			"industry":         opp.Industry,
			"location":         opp.Location,
			"remote":           opp.Remote,
			"compensation_min": opp.CompensationMin,
			"compensation_max": opp.CompensationMax,
			"required_skills":  opp.RequiredSkills,
			"preferred_skills": opp.PreferredSkills,
			"team_size_min":    opp.TeamSizeMin,
			"team_size_max":    opp.TeamSizeMax,
			"urgency":          opp.Urgency,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *opportunityRepo) List(ctx context.Context, filter OpportunityFilter, page Pagination) ([]model.Opportunity, int64, error) {
	var list []model.Opportunity
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Opportunity{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CompanyID != "" {
		db = db.Where("company_id = ?", filter.CompanyID)
	}
	db = applyTextFilters(db, filter.Industry, filter.Location)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Company").
		Offset(page.Offset).Limit(page.Limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *opportunityRepo) ListOpenWithCompany(ctx context.Context) ([]model.Opportunity, error) {
	var list []model.Opportunity
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", model.OpportunityStatusOpen).
		Find(&list).Error
	return list, err
}

func (r *opportunityRepo) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Opportunity{}).
		Where("opportunity_id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrStaleState
	}
	return nil
}
