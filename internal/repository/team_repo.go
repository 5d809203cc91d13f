package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// TeamFilter 团队列表筛选
type TeamFilter struct {
	Industry string
	Location string
}

// TeamRepository 团队数据访问接口
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	// GetByID 返回团队及其全部成员
	GetByID(ctx context.Context, id string) (*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	List(ctx context.Context, filter TeamFilter, page Pagination) ([]model.Team, int64, error)
	// ListVisibleWithMembers 匹配评分用：全部可见团队（含成员）
	ListVisibleWithMembers(ctx context.Context) ([]model.Team, error)
	ListByMember(ctx context.Context, userID string) ([]model.Team, error)
}

type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo 创建 TeamRepository 实例
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Omit("Members").Create(team).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{TeamID: team.TeamID}).
		Updates(map[string]interface{}{
			"name":               team.Name,
			"description":        team.Description,
			"industry":           team.Industry,
			"specialization":     team.Specialization,
			"location":           team.Location,
			"size":               team.Size,
			"skills":             team.Skills,
			"compensation_min":   team.CompensationMin,
			"compensation_max":   team.CompensationMax,
			"years_together":     team.YearsTogether,
			"availability":       team.Availability,
			"open_to_relocation": team.OpenToRelocation,
			"visible":            team.Visible,
			"updated_at":         time.Now().UTC(),
		}).Error
}

func (r *teamRepo) List(ctx context.Context, filter TeamFilter, page Pagination) ([]model.Team, int64, error) {
	var teams []model.Team
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Team{}).Where("visible = ?", true)
	db = applyTextFilters(db, filter.Industry, filter.Location)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Members").
		Offset(page.Offset).Limit(page.Limit).
		Order("created_at DESC").
		Find(&teams).Error; err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

func (r *teamRepo) ListVisibleWithMembers(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("visible = ?", true).
		Find(&teams).Error
	return teams, err
}

func (r *teamRepo) ListByMember(ctx context.Context, userID string) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Where("team_id IN (?)",
			r.db.Model(&model.TeamMember{}).
				Select("team_id").
				Where("user_id = ? AND status = ?", userID, model.MemberStatusActive),
		).
		Order("created_at DESC").
		Find(&teams).Error
	return teams, err
}

// applyTextFilters 行业精确匹配（忽略大小写），地点模糊匹配
func applyTextFilters(db *gorm.DB, industry, location string) *gorm.DB {
	if industry = strings.TrimSpace(industry); industry != "" {
		db = db.Where("LOWER(industry) = ?", strings.ToLower(industry))
	}
	if location = strings.TrimSpace(location); location != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	return db
}

// ── TeamMember ──

// TeamMemberRepository 团队成员与团队邀请数据访问接口
type TeamMemberRepository interface {
	Create(ctx context.Context, m *model.TeamMember) error
	GetByID(ctx context.Context, id string) (*model.TeamMember, error)
	GetActive(ctx context.Context, teamID, userID string) (*model.TeamMember, error)
	ListActive(ctx context.Context, teamID string) ([]model.TeamMember, error)
	ListPendingInvites(ctx context.Context, teamID string) ([]model.TeamMember, error)
	HasPendingInvite(ctx context.Context, teamID, email string, now time.Time) (bool, error)
	ClearExpiredInvites(ctx context.Context, teamID, email string, now time.Time) error
	UpdateProfile(ctx context.Context, id, title string, skills model.StringArray) error
	Delete(ctx context.Context, id string) error
	GetByInviteToken(ctx context.Context, token string) (*model.TeamMember, error)
	ConsumeInvite(ctx context.Context, token, userID string, now time.Time) error
	DeclineInvite(ctx context.Context, token string, retain bool, now time.Time) error
}

type teamMemberRepo struct {
	db *gorm.DB
}

// NewTeamMemberRepo 创建 TeamMemberRepository 实例
func NewTeamMemberRepo(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) Create(ctx context.Context, m *model.TeamMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *teamMemberRepo) GetByID(ctx context.Context, id string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_member_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamMemberRepo) GetActive(ctx context.Context, teamID, userID string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, model.MemberStatusActive).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamMemberRepo) ListActive(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var list []model.TeamMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ? AND status = ?", teamID, model.MemberStatusActive).
		Order("joined_at ASC").
		Find(&list).Error
	return list, err
}

func (r *teamMemberRepo) ListPendingInvites(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var list []model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ? AND invite_token IS NOT NULL", teamID, model.MemberStatusPending).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *teamMemberRepo) HasPendingInvite(ctx context.Context, teamID, email string, now time.Time) (bool, error) {
	return hasPendingInvite(ctx, r.db, &model.TeamMember{}, "team_id", teamID, email, now)
}

func (r *teamMemberRepo) ClearExpiredInvites(ctx context.Context, teamID, email string, now time.Time) error {
	return clearExpiredInvites(ctx, r.db, &model.TeamMember{}, "team_id", teamID, email, now)
}

func (r *teamMemberRepo) UpdateProfile(ctx context.Context, id, title string, skills model.StringArray) error {
	return r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_member_id = ?", id).
		Updates(map[string]interface{}{
			"title":      title,
			"skills":     skills,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *teamMemberRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("team_member_id = ?", id).
		Delete(&model.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByInviteToken 按令牌查询邀请；已消费的令牌查不到（gorm.ErrRecordNotFound）
func (r *teamMemberRepo) GetByInviteToken(ctx context.Context, token string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("invite_token = ? AND status = ?", token, model.MemberStatusPending).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamMemberRepo) ConsumeInvite(ctx context.Context, token, userID string, now time.Time) error {
	return consumeInvite(ctx, r.db, &model.TeamMember{}, token, userID, now)
}

func (r *teamMemberRepo) DeclineInvite(ctx context.Context, token string, retain bool, now time.Time) error {
	return declineInvite(ctx, r.db, &model.TeamMember{}, token, retain, now)
}
