package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezhulati/liftout-platform-sub008/pkg/database"
)

var errSQLiteMigrate = errors.New("sqlite 数据源在启动时由 AutoMigrate 建表，无需执行迁移")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "PostgreSQL 数据库迁移",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "执行全部未应用的迁移",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrate(func(m migrator) error { return m.up() })
	},
}

var rollbackSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "回滚迁移",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrate(func(m migrator) error { return m.down(rollbackSteps) })
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "回滚步数")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

type migrator struct {
	up   func() error
	down func(steps int) error
}

func runMigrate(fn func(m migrator) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Database.IsSQLite() {
		return errSQLiteMigrate
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	return fn(migrator{
		up:   func() error { return database.RunMigrations(sqlDB, logger) },
		down: func(steps int) error { return database.RollbackMigrations(sqlDB, steps, logger) },
	})
}
