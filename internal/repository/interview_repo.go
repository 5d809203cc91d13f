package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// InterviewRepository 面试数据访问接口
type InterviewRepository interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	ListByApplication(ctx context.Context, applicationID string) ([]model.Interview, error)
}

type interviewRepo struct {
	db *gorm.DB
}

// NewInterviewRepo 创建 InterviewRepository 实例
func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	return r.db.WithContext(ctx).Omit("Application").Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.WithContext(ctx).
		Preload("Application.Team.Members").
		Preload("Application.Opportunity.Company").
		Where("interview_id = ?", id).
		First(&iv).Error
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) ListByApplication(ctx context.Context, applicationID string) ([]model.Interview, error) {
	var list []model.Interview
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("scheduled_at ASC").
		Find(&list).Error
	return list, err
}
