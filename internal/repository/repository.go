package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Company     CompanyRepository
	CompanyUser CompanyUserRepository
	Team        TeamRepository
	TeamMember  TeamMemberRepository
	Opportunity OpportunityRepository
	Application ApplicationRepository
	Interview   InterviewRepository
	AuditLog    AuditLogRepository
	Stats       StatsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Company:     NewCompanyRepo(db),
		CompanyUser: NewCompanyUserRepo(db),
		Team:        NewTeamRepo(db),
		TeamMember:  NewTeamMemberRepo(db),
		Opportunity: NewOpportunityRepo(db),
		Application: NewApplicationRepo(db),
		Interview:   NewInterviewRepo(db),
		AuditLog:    NewAuditLogRepo(db),
		Stats:       NewStatsRepo(db),
	}
}

// Transaction 在单个数据库事务中执行 fn；fn 返回错误时回滚
// 未绑定 *gorm.DB 的聚合（单元测试中的 mock 组合）直接在自身上执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// Pagination 分页参数
type Pagination struct {
	Offset int
	Limit  int
}
