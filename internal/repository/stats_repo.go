package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// PlatformStats 平台统计
type PlatformStats struct {
	UsersByType           map[string]int64
	Teams                 int64
	OpportunitiesByStatus map[string]int64
	ApplicationsByStatus  map[string]int64
	PendingInvitations    int64
}

// StatsRepository 统计查询接口
type StatsRepository interface {
	Collect(ctx context.Context, now time.Time) (*PlatformStats, error)
}

type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

type groupCount struct {
	Label string
	Total int64
}

func (r *statsRepo) Collect(ctx context.Context, now time.Time) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := &PlatformStats{}
	var err error

	if stats.UsersByType, err = countBy(db, &model.User{}, "user_type"); err != nil {
		return nil, err
	}
	if stats.OpportunitiesByStatus, err = countBy(db, &model.Opportunity{}, "status"); err != nil {
		return nil, err
	}
	if stats.ApplicationsByStatus, err = countBy(db, &model.TeamApplication{}, "status"); err != nil {
		return nil, err
	}
	if err = db.Model(&model.Team{}).Count(&stats.Teams).Error; err != nil {
		return nil, err
	}

	for _, table := range []interface{}{&model.TeamMember{}, &model.CompanyUser{}} {
		var n int64
		err := db.Model(table).
			Where("status = ? AND invite_token IS NOT NULL AND invite_expires_at >= ?", model.MemberStatusPending, now).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		stats.PendingInvitations += n
	}

	return stats, nil
}

func countBy(db *gorm.DB, table interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	err := db.Model(table).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out, nil
}
