package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/database"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/mail"
	"github.com/ezhulati/liftout-platform-sub008/pkg/redis"
)

// application serve 与 seed 共用的依赖装配结果
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	rdb    *redis.Client
	jwtMgr *jwt.Manager
	repo   *repository.Repository
	svc    *service.Service
}

// newApplication 依赖注入: 数据源 → Redis → Repository → Service
func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	// PostgreSQL 表结构由 golang-migrate 管理；SQLite 在打开时已 AutoMigrate
	if !cfg.Database.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			return nil, err
		}
	}

	a := &application{cfg: cfg, logger: logger, db: db}

	// Redis 可选：连接失败时降级运行，不中断启动
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，Token 黑名单与限流将不可用", zap.Error(err))
		} else {
			a.rdb = rdb
		}
	}

	mailer, err := mail.New(ctx, &cfg.Mail, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("初始化邮件发送失败: %w", err)
	}

	a.jwtMgr = jwt.NewManager(&cfg.Auth)
	a.repo = repository.NewRepository(db)

	deps := service.Deps{
		Repo:   a.repo,
		JWT:    a.jwtMgr,
		Mailer: mailer,
		Logger: logger,
	}
	// nil *redis.Client 不能直接赋给接口
	if a.rdb != nil {
		deps.Blacklist = a.rdb
	}

	a.svc, err = service.NewService(cfg, deps)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("初始化服务失败: %w", err)
	}
	return a, nil
}

func (a *application) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
