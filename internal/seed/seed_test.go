package seed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
	"github.com/ezhulati/liftout-platform-sub008/pkg/database"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
	"github.com/ezhulati/liftout-platform-sub008/pkg/mail"
)

func TestRun_LoadsOnceAndLoginWorks(t *testing.T) {
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:3000"},
		Auth: config.AuthConfig{
			JWTSecret:       "seed-test-secret-0123456789abcdef",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		},
		Mail:       config.MailConfig{MaxConcurrency: 1},
		Invitation: config.InvitationConfig{TTL: time.Hour, TokenBytes: 32, MaxTokenAttempts: 3},
		Matching: config.MatchingConfig{
			Thresholds:   config.ThresholdConfig{Excellent: 85, Good: 70, Fair: 55},
			DefaultLimit: 20,
			MaxLimit:     100,
		},
	}
	logger := zap.NewNop()
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, service.Deps{
		Repo:   repo,
		JWT:    jwt.NewManager(&cfg.Auth),
		Mailer: mail.NewLogMailer("Liftout <no-reply@liftout.com>", logger),
		Logger: logger,
	})
	require.NoError(t, err)

	ctx := context.Background()
	res, err := Run(ctx, repo, svc, logger)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.TeamIDs, 2)
	require.Len(t, res.OpportunityIDs, 2)
	require.NotEmpty(t, res.ApplicationID)

	again, err := Run(ctx, repo, svc, logger)
	require.NoError(t, err)
	require.Nil(t, again, "重复加载应跳过")

	for _, email := range []string{AdminEmail, CompanyEmail, IndividualEmail} {
		_, err := svc.Auth.Login(ctx, &dto.LoginRequest{Email: email, Password: DemoPassword})
		require.NoError(t, err, email)
	}

	admin, err := repo.User.GetByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	require.Equal(t, "admin", admin.UserType)
}
