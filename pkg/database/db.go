package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
)

// NewDB 按配置初始化数据源
// postgres 为生产数据源（表结构由 golang-migrate 管理）；
// sqlite 为内存/本地文件数据源，启动时 AutoMigrate。
func NewDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogQueries {
		level = gormlogger.Info
	}
	gormCfg := newGormConfig(level)

	if cfg.IsSQLite() {
		return openSQLite(cfg, gormCfg, logger)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	logger.Info("数据库连接成功",
		zap.String("driver", "postgres"),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
	)

	return db, nil
}

// OpenSQLite 打开 SQLite 数据源并建表（测试与演示共用）
func OpenSQLite(path string) (*gorm.DB, error) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", SQLitePath: path}
	return openSQLite(cfg, newGormConfig(gormlogger.Silent), zap.NewNop())
}

// newGormConfig 两种数据源共用的 GORM 配置
// 外键约束不由 AutoMigrate 推导：PostgreSQL 以 SQL 迁移为准，SQLite 只需唯一索引
func newGormConfig(level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(level),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}
}

// membershipIndexes 成员关系的部分唯一索引，与迁移 000002 一致
// 每个组织下：同一用户至多一条 active，同一邮箱至多一条 pending
var membershipIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_team_members_active_user ON team_members (team_id, user_id) WHERE status = 'active'",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_team_members_pending_email ON team_members (team_id, invite_email) WHERE status = 'pending'",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_company_users_active_user ON company_users (company_id, user_id) WHERE status = 'active'",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_company_users_pending_email ON company_users (company_id, invite_email) WHERE status = 'pending'",
}

func openSQLite(cfg *config.DatabaseConfig, gormCfg *gorm.Config, logger *zap.Logger) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	// SQLite 单写者；单连接保证内存库在连接间共享且条件更新串行执行
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return nil, fmt.Errorf("SQLite 建表失败: %w", err)
	}
	for _, stmt := range membershipIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("SQLite 创建索引失败: %w", err)
		}
	}

	logger.Info("数据库连接成功",
		zap.String("driver", "sqlite"),
		zap.String("path", path),
	)
	return db, nil
}
