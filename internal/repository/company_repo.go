package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// CompanyRepository 公司数据访问接口
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	Update(ctx context.Context, company *model.Company) error
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo 创建 CompanyRepository 实例
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("company_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).
		Model(company).
		Updates(map[string]interface{}{
			"name":        company.Name,
			"industry":    company.Industry,
			"location":    company.Location,
			"description": company.Description,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// ── CompanyUser ──

// CompanyUserRepository 公司成员与公司邀请数据访问接口
type CompanyUserRepository interface {
	Create(ctx context.Context, cu *model.CompanyUser) error
	// GetActiveByUser 用户当前所属公司（取最早加入的一条）
	GetActiveByUser(ctx context.Context, userID string) (*model.CompanyUser, error)
	GetActiveMember(ctx context.Context, companyID, userID string) (*model.CompanyUser, error)
	ListActive(ctx context.Context, companyID string) ([]model.CompanyUser, error)
	ListPendingInvites(ctx context.Context, companyID string) ([]model.CompanyUser, error)
	HasPendingInvite(ctx context.Context, companyID, email string, now time.Time) (bool, error)
	ClearExpiredInvites(ctx context.Context, companyID, email string, now time.Time) error
	GetByInviteToken(ctx context.Context, token string) (*model.CompanyUser, error)
	ConsumeInvite(ctx context.Context, token, userID string, now time.Time) error
	DeclineInvite(ctx context.Context, token string, retain bool, now time.Time) error
}

type companyUserRepo struct {
	db *gorm.DB
}

// NewCompanyUserRepo 创建 CompanyUserRepository 实例
func NewCompanyUserRepo(db *gorm.DB) CompanyUserRepository {
	return &companyUserRepo{db: db}
}

func (r *companyUserRepo) Create(ctx context.Context, cu *model.CompanyUser) error {
	return r.db.WithContext(ctx).Create(cu).Error
}

func (r *companyUserRepo) GetActiveByUser(ctx context.Context, userID string) (*model.CompanyUser, error) {
	var cu model.CompanyUser
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ? AND status = ?", userID, model.MemberStatusActive).
		Order("joined_at ASC").
		First(&cu).Error
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (r *companyUserRepo) GetActiveMember(ctx context.Context, companyID, userID string) (*model.CompanyUser, error) {
	var cu model.CompanyUser
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND user_id = ? AND status = ?", companyID, userID, model.MemberStatusActive).
		First(&cu).Error
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (r *companyUserRepo) ListActive(ctx context.Context, companyID string) ([]model.CompanyUser, error) {
	var list []model.CompanyUser
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ? AND status = ?", companyID, model.MemberStatusActive).
		Order("joined_at ASC").
		Find(&list).Error
	return list, err
}

func (r *companyUserRepo) ListPendingInvites(ctx context.Context, companyID string) ([]model.CompanyUser, error) {
	var list []model.CompanyUser
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ? AND invite_token IS NOT NULL", companyID, model.MemberStatusPending).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *companyUserRepo) HasPendingInvite(ctx context.Context, companyID, email string, now time.Time) (bool, error) {
	return hasPendingInvite(ctx, r.db, &model.CompanyUser{}, "company_id", companyID, email, now)
}

func (r *companyUserRepo) ClearExpiredInvites(ctx context.Context, companyID, email string, now time.Time) error {
	return clearExpiredInvites(ctx, r.db, &model.CompanyUser{}, "company_id", companyID, email, now)
}

// GetByInviteToken 按令牌查询邀请；已消费的令牌查不到（gorm.ErrRecordNotFound）
func (r *companyUserRepo) GetByInviteToken(ctx context.Context, token string) (*model.CompanyUser, error) {
	var cu model.CompanyUser
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("invite_token = ? AND status = ?", token, model.MemberStatusPending).
		First(&cu).Error
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (r *companyUserRepo) ConsumeInvite(ctx context.Context, token, userID string, now time.Time) error {
	return consumeInvite(ctx, r.db, &model.CompanyUser{}, token, userID, now)
}

func (r *companyUserRepo) DeclineInvite(ctx context.Context, token string, retain bool, now time.Time) error {
	return declineInvite(ctx, r.db, &model.CompanyUser{}, token, retain, now)
}
