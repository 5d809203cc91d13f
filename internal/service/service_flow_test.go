package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/pkg/calendar"
	"github.com/ezhulati/liftout-platform-sub008/pkg/database"
	"github.com/ezhulati/liftout-platform-sub008/pkg/jwt"
)

// ── SQLite 夹具 ──

type flow struct {
	svc    *Service
	repo   *repository.Repository
	mailer *mockMailer
}

func newFlow(t *testing.T) *flow {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Server: config.ServerConfig{BaseURL: "https://app.test"},
		Auth: config.AuthConfig{
			JWTSecret:       "flow-test-secret-at-least-32-bytes!!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Mail:       config.MailConfig{MaxConcurrency: 2},
		Invitation: config.InvitationConfig{TTL: time.Hour, TokenBytes: 32, MaxTokenAttempts: 3},
		Matching: config.MatchingConfig{
			Thresholds:   config.ThresholdConfig{Excellent: 85, Good: 70, Fair: 55},
			DefaultLimit: 20,
			MaxLimit:     100,
		},
	}

	repo := repository.NewRepository(db)
	mailer := &mockMailer{fail: map[string]bool{}}
	svc, err := NewService(cfg, Deps{
		Repo:   repo,
		JWT:    jwt.NewManager(&cfg.Auth),
		Mailer: mailer,
		Logger: testLogger(),
	})
	require.NoError(t, err)
	return &flow{svc: svc, repo: repo, mailer: mailer}
}

func (f *flow) register(t *testing.T, req dto.RegisterRequest) *auth.Principal {
	t.Helper()
	resp, err := f.svc.Auth.Register(context.Background(), &req)
	require.NoError(t, err)
	return &auth.Principal{UserID: resp.User.ID, Email: resp.User.Email, UserType: resp.User.UserType}
}

func (f *flow) companyUser(t *testing.T, email string) *auth.Principal {
	return f.register(t, dto.RegisterRequest{
		Email: email, Password: "password123", Name: "Recruiter", UserType: model.UserTypeCompany, CompanyName: "Acme Health",
	})
}

func (f *flow) individual(t *testing.T, email string) *auth.Principal {
	return f.register(t, dto.RegisterRequest{
		Email: email, Password: "password123", Name: "Lead " + email, UserType: model.UserTypeIndividual,
	})
}

// ── Auth ──

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	p := f.individual(t, "lead@example.com")

	_, err := f.svc.Auth.Register(ctx, &dto.RegisterRequest{
		Email: "LEAD@example.com", Password: "password123", Name: "Dup", UserType: model.UserTypeIndividual,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Auth.Register(ctx, &dto.RegisterRequest{
		Email: "co@example.com", Password: "password123", Name: "Co", UserType: model.UserTypeCompany,
	})
	assert.ErrorIs(t, err, ErrCompanyNameRequired)

	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "lead@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: " Lead@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, p.UserID, tokens.User.ID)

	refreshed, err := f.svc.Auth.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.Auth.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token 不能用于刷新")
}

func TestAuth_CompanyRegistrationCreatesOwner(t *testing.T) {
	f := newFlow(t)
	hr := f.companyUser(t, "hr@acme.test")

	me, err := f.svc.Auth.Me(context.Background(), hr)
	require.NoError(t, err)
	require.NotNil(t, me.Company)
	assert.Equal(t, "Acme Health", me.Company.Name)
	assert.Equal(t, model.CompanyRoleOwner, me.Company.Role)

	members, err := f.svc.Company.ListMembers(context.Background(), hr)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "hr@acme.test", members[0].Email)
}

func TestAdmin_SuspendBlocksLogin(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	user := f.individual(t, "user@example.com")
	admin := &auth.Principal{UserID: uuid.NewString(), UserType: model.UserTypeAdmin}

	resp, err := f.svc.Admin.SuspendUser(ctx, admin, user.UserID, true)
	require.NoError(t, err)
	assert.True(t, resp.Suspended)

	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserSuspended)

	_, err = f.svc.Admin.SuspendUser(ctx, admin, uuid.NewString(), true)
	assert.ErrorIs(t, err, ErrUserNotFound)

	logs, total, err := f.svc.Audit.List(ctx, &dto.AuditLogListRequest{Action: model.AuditUserSuspended})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, user.UserID, logs[0].EntityID)
}

// ── Team ──

func TestTeam_CreateUpdateAndMembers(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	lead := f.individual(t, "lead@example.com")
	hr := f.companyUser(t, "hr@acme.test")

	_, err := f.svc.Team.Create(ctx, hr, &dto.CreateTeamRequest{Name: "Nope"})
	assert.ErrorIs(t, err, ErrIndividualOnly)

	_, err = f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{Name: "Bad", CompensationMin: 200, CompensationMax: 100})
	assert.ErrorIs(t, err, ErrInvalidRange)

	team, err := f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{
		Name: "Data Crew", Industry: "Finance", Skills: []string{"Python", " python ", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, team.Skills)
	assert.Equal(t, 1, team.MemberCount)

	me, err := f.svc.Team.UpdateMyMembership(ctx, lead, team.ID, &dto.UpdateMyMembershipRequest{
		Title: "Lead", Skills: []string{"ML"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lead", me.Title)

	got, err := f.svc.Team.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL", "ML"}, got.EffectiveSkills)

	name := "Data Crew II"
	_, err = f.svc.Team.Update(ctx, hr, team.ID, &dto.UpdateTeamRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := f.svc.Team.Update(ctx, lead, team.ID, &dto.UpdateTeamRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	members, err := f.svc.Team.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.ErrorIs(t, f.svc.Team.RemoveMember(ctx, lead, team.ID, members[0].ID), ErrCannotRemoveOwner)
}

// ── Opportunity ──

func TestOpportunity_StatusTransitions(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	hr := f.companyUser(t, "hr@acme.test")
	outsider := f.companyUser(t, "hr@other.test")

	opp, err := f.svc.Opportunity.Create(ctx, hr, &dto.CreateOpportunityRequest{Title: "Risk team"})
	require.NoError(t, err)
	assert.Equal(t, model.OpportunityStatusOpen, opp.Status)
	assert.Equal(t, model.UrgencyMedium, opp.Urgency)

	set := func(p *auth.Principal, status string) error {
		_, err := f.svc.Opportunity.UpdateStatus(ctx, p, opp.ID, &dto.UpdateOpportunityStatusRequest{Status: status})
		return err
	}
	assert.ErrorIs(t, set(outsider, model.OpportunityStatusClosed), ErrForbidden)
	require.NoError(t, set(hr, model.OpportunityStatusClosed))
	assert.ErrorIs(t, set(hr, model.OpportunityStatusFilled), ErrInvalidTransition)
	require.NoError(t, set(hr, model.OpportunityStatusOpen))
	require.NoError(t, set(hr, model.OpportunityStatusFilled))
	assert.ErrorIs(t, set(hr, model.OpportunityStatusOpen), ErrInvalidTransition)

	list, total, err := f.svc.Opportunity.List(ctx, &dto.OpportunityListRequest{})
	require.NoError(t, err)
	assert.Zero(t, total, "默认只列出 open")
	assert.Empty(t, list)

	_, total, err = f.svc.Opportunity.List(ctx, &dto.OpportunityListRequest{Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

// ── 端到端招聘流程 ──

func TestHiringFlow_MatchApplyInterviewOffer(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	hr := f.companyUser(t, "hr@acme.test")
	lead := f.individual(t, "lead@example.com")
	stranger := f.individual(t, "stranger@example.com")

	opp, err := f.svc.Opportunity.Create(ctx, hr, &dto.CreateOpportunityRequest{
		Title: "Quant desk", Industry: "Finance", RequiredSkills: []string{"Python", "ML"},
	})
	require.NoError(t, err)
	team, err := f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{
		Name: "Data Crew", Industry: "Finance", Skills: []string{"python", "ml"},
	})
	require.NoError(t, err)
	_, err = f.svc.Team.Create(ctx, stranger, &dto.CreateTeamRequest{
		Name: "Frontend Guild", Industry: "Retail", Skills: []string{"react"},
	})
	require.NoError(t, err)

	// 匹配
	teams, err := f.svc.Matching.MatchTeams(ctx, hr, &dto.TeamMatchRequest{OpportunityID: opp.ID})
	require.NoError(t, err)
	require.Equal(t, 2, teams.Total)
	assert.Equal(t, "Data Crew", teams.Matches[0].Team.Name)
	assert.Equal(t, 100, teams.Matches[0].Score.Breakdown["skills"])
	assert.GreaterOrEqual(t, teams.Matches[0].Score.Total, teams.Matches[1].Score.Total)

	one := 1
	limited, err := f.svc.Matching.MatchTeams(ctx, hr, &dto.TeamMatchRequest{OpportunityID: opp.ID, Limit: &one})
	require.NoError(t, err)
	assert.Len(t, limited.Matches, 1)
	assert.Equal(t, 2, limited.Total, "total 统计截断前的数量")

	_, err = f.svc.Matching.MatchTeams(ctx, lead, &dto.TeamMatchRequest{OpportunityID: opp.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	opps, err := f.svc.Matching.MatchOpportunities(ctx, lead, &dto.OpportunityMatchRequest{TeamID: team.ID})
	require.NoError(t, err)
	require.Equal(t, 1, opps.Total)
	_, err = f.svc.Matching.MatchOpportunities(ctx, stranger, &dto.OpportunityMatchRequest{TeamID: team.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// 申请
	app, err := f.svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{TeamID: team.ID, OpportunityID: opp.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusSubmitted, app.Status)
	_, err = f.svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{TeamID: team.ID, OpportunityID: opp.ID})
	assert.ErrorIs(t, err, ErrApplicationExists)

	detail, err := f.svc.Application.Get(ctx, hr, app.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Score)
	_, err = f.svc.Application.Get(ctx, stranger, app.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Application.List(ctx, lead, &dto.ApplicationListRequest{})
	assert.ErrorIs(t, err, ErrListScopeRequired)
	byOpp, err := f.svc.Application.List(ctx, hr, &dto.ApplicationListRequest{OpportunityID: opp.ID})
	require.NoError(t, err)
	assert.Len(t, byOpp, 1)

	reviewing, err := f.svc.Application.UpdateStatus(ctx, hr, app.ID, &dto.UpdateApplicationStatusRequest{Status: "reviewing"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusReviewing, reviewing.Status)
	_, err = f.svc.Application.UpdateStatus(ctx, hr, app.ID, &dto.UpdateApplicationStatusRequest{Status: "reviewing"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// 面试：一个收件人失败不影响其他人
	f.mailer.fail["down@example.com"] = true
	scheduled, err := f.svc.Interview.Schedule(ctx, hr, app.ID, &dto.ScheduleInterviewRequest{
		ScheduledAt: time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		Attendees:   []string{"Lead@Example.com", "down@example.com", "lead@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 60, scheduled.Interview.DurationMinutes)
	require.Len(t, scheduled.Deliveries, 2)
	for _, d := range scheduled.Deliveries {
		if d.Email == "down@example.com" {
			assert.False(t, d.Success)
			assert.NotEmpty(t, d.Error)
		} else {
			assert.True(t, d.Success)
			assert.NotEmpty(t, d.MessageID)
		}
	}
	assert.Equal(t, 1, f.mailer.attachments)

	_, err = f.svc.Interview.Schedule(ctx, hr, app.ID, &dto.ScheduleInterviewRequest{
		ScheduledAt: time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		Attendees:   []string{"lead@example.com"},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	ics, err := f.svc.Interview.Calendar(ctx, lead, scheduled.Interview.ID)
	require.NoError(t, err)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")
	assert.Contains(t, string(ics), scheduled.Interview.ID+"@liftout")

	interviews, err := f.svc.Interview.List(ctx, lead, app.ID)
	require.NoError(t, err)
	assert.Len(t, interviews, 1)

	// Offer
	_, err = f.svc.Application.MakeOffer(ctx, hr, app.ID, &dto.MakeOfferRequest{Compensation: 900000, StartDate: "next week"})
	assert.ErrorIs(t, err, ErrInvalidStartDate)
	offered, err := f.svc.Application.MakeOffer(ctx, hr, app.ID, &dto.MakeOfferRequest{Compensation: 900000, StartDate: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusOfferMade, offered.Status)
	assert.Equal(t, "2026-09-01", offered.OfferStartDate)

	_, err = f.svc.Application.RespondOffer(ctx, hr, app.ID, &dto.RespondOfferRequest{Action: "accept"})
	assert.ErrorIs(t, err, ErrForbidden, "公司方不能替团队接受 Offer")

	accepted, err := f.svc.Application.RespondOffer(ctx, lead, app.ID, &dto.RespondOfferRequest{Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusAccepted, accepted.Status)

	filled, err := f.svc.Opportunity.Get(ctx, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OpportunityStatusFilled, filled.Status)

	_, err = f.svc.Application.Withdraw(ctx, lead, app.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "已接受的申请不能撤回")

	// 导出
	buf, filename, err := f.svc.Export.ExportApplications(ctx, hr, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, "applications_Quant_desk.xlsx", filename)
	xf, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer xf.Close()
	rows, err := xf.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Data Crew", rows[2][0])
	assert.Equal(t, model.ApplicationStatusAccepted, rows[2][2])

	_, _, err = f.svc.Export.ExportApplications(ctx, lead, opp.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 统计
	stats, err := f.svc.Admin.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.UsersByType[model.UserTypeIndividual])
	assert.EqualValues(t, 1, stats.UsersByType[model.UserTypeCompany])
	assert.EqualValues(t, 2, stats.Teams)
	assert.EqualValues(t, 1, stats.ApplicationsByStatus[model.ApplicationStatusAccepted])
}

// recordingBlacklist 记录用户级吊销调用
type recordingBlacklist struct {
	revoked  map[string]time.Duration
	restored []string
	err      error
}

func (b *recordingBlacklist) BlacklistToken(context.Context, string, time.Duration) error { return nil }
func (b *recordingBlacklist) IsBlacklisted(context.Context, string) (bool, error) { return false, nil }

func (b *recordingBlacklist) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	if b.revoked == nil {
		b.revoked = map[string]time.Duration{}
	}
	b.revoked[userID] = ttl
	return b.err
}

func (b *recordingBlacklist) RestoreUser(_ context.Context, userID string) error {
	b.restored = append(b.restored, userID)
	return b.err
}

func TestAdmin_SuspendRevokesOutstandingTokens(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	user := f.individual(t, "user@example.com")
	admin := &auth.Principal{UserID: uuid.NewString(), UserType: model.UserTypeAdmin}
	bl := &recordingBlacklist{}
	svc := NewAdminService(f.repo, bl, 15*time.Minute, f.svc.Audit, testLogger())

	_, err := svc.SuspendUser(ctx, admin, user.UserID, true)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, bl.revoked[user.UserID], "吊销应覆盖 Access Token 最长有效期")

	_, err = svc.SuspendUser(ctx, admin, user.UserID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{user.UserID}, bl.restored)

	_, err = svc.SuspendUser(ctx, admin, admin.UserID, true)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotContains(t, bl.revoked, admin.UserID)

	// Redis 不可用时封禁仍以数据库为准
	bl.err = errors.New("connection refused")
	resp, err := svc.SuspendUser(ctx, admin, user.UserID, true)
	require.NoError(t, err)
	assert.True(t, resp.Suspended)
}

func TestNewScorers_DirectionalDefaults(t *testing.T) {
	team, opp, err := NewScorers(&config.MatchingConfig{})
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultTeamWeights(), team.Weights())
	assert.Equal(t, matching.DefaultOpportunityWeights(), opp.Weights(), "机会评分器不应回退到团队权重")

	_, opp, err = NewScorers(&config.MatchingConfig{OpportunityWeights: map[string]float64{"urgency": 1}})
	require.NoError(t, err)
	assert.Equal(t, matching.Weights{matching.FactorUrgency: 1}, opp.Weights())

	_, _, err = NewScorers(&config.MatchingConfig{TeamWeights: map[string]float64{"skills": 0}})
	assert.Error(t, err)
}

func TestInterview_CalendarFailureReportsEveryAttendee(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	hr := f.companyUser(t, "hr@acme.test")
	lead := f.individual(t, "lead@example.com")

	opp, err := f.svc.Opportunity.Create(ctx, hr, &dto.CreateOpportunityRequest{Title: "Ops"})
	require.NoError(t, err)
	team, err := f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{Name: "Ops Crew"})
	require.NoError(t, err)
	app, err := f.svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{TeamID: team.ID, OpportunityID: opp.ID})
	require.NoError(t, err)

	f.svc.Interview.(*interviewService).buildICS = func(calendar.Event, time.Time) ([]byte, error) {
		return nil, calendar.ErrInvalidEvent
	}
	scheduled, err := f.svc.Interview.Schedule(ctx, hr, app.ID, &dto.ScheduleInterviewRequest{
		ScheduledAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		Attendees:   []string{"lead@example.com", "panel@acme.test"},
	})
	require.NoError(t, err, "面试本身已创建")
	require.Len(t, scheduled.Deliveries, 2)
	for _, d := range scheduled.Deliveries {
		assert.False(t, d.Success, d.Email)
		assert.NotEmpty(t, d.Error, d.Email)
		assert.Empty(t, d.MessageID, d.Email)
	}
	assert.ElementsMatch(t, []string{"lead@example.com", "panel@acme.test"},
		[]string{scheduled.Deliveries[0].Email, scheduled.Deliveries[1].Email})
	assert.Empty(t, f.mailer.sent, "日历生成失败时不应发信")

	got, err := f.svc.Application.Get(ctx, hr, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInterviewing, got.Status)
}

func TestApplication_RejectedOfferAndWithdraw(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	hr := f.companyUser(t, "hr@acme.test")
	lead := f.individual(t, "lead@example.com")

	opp, err := f.svc.Opportunity.Create(ctx, hr, &dto.CreateOpportunityRequest{Title: "Ops"})
	require.NoError(t, err)
	team, err := f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{Name: "Ops Crew"})
	require.NoError(t, err)
	app, err := f.svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{TeamID: team.ID, OpportunityID: opp.ID})
	require.NoError(t, err)

	_, err = f.svc.Application.MakeOffer(ctx, hr, app.ID, &dto.MakeOfferRequest{Compensation: 1})
	assert.ErrorIs(t, err, ErrInvalidTransition, "submitted 不能直接发 Offer")

	withdrawn, err := f.svc.Application.Withdraw(ctx, lead, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusWithdrawn, withdrawn.Status)

	_, err = f.svc.Opportunity.UpdateStatus(ctx, hr, opp.ID, &dto.UpdateOpportunityStatusRequest{Status: "closed"})
	require.NoError(t, err)
	other, err := f.svc.Team.Create(ctx, lead, &dto.CreateTeamRequest{Name: "Second Crew"})
	require.NoError(t, err)
	_, err = f.svc.Application.Create(ctx, lead, &dto.CreateApplicationRequest{TeamID: other.ID, OpportunityID: opp.ID})
	assert.ErrorIs(t, err, ErrOpportunityNotOpen)
}
