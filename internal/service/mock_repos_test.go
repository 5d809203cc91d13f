package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
	"github.com/ezhulati/liftout-platform-sub008/pkg/mail"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.Email = model.NormalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) SetSuspended(_ context.Context, id string, suspended bool) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Suspended = suspended
	return nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = fmt.Sprintf("team-%d", len(m.teams)+1)
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) List(_ context.Context, _ repository.TeamFilter, _ repository.Pagination) ([]model.Team, int64, error) {
	var list []model.Team
	for _, t := range m.teams {
		if t.Visible {
			list = append(list, *t)
		}
	}
	return list, int64(len(list)), nil
}

func (m *mockTeamRepo) ListVisibleWithMembers(ctx context.Context) ([]model.Team, error) {
	list, _, err := m.List(ctx, repository.TeamFilter{}, repository.Pagination{})
	return list, err
}

func (m *mockTeamRepo) ListByMember(_ context.Context, _ string) ([]model.Team, error) {
	return nil, nil
}

// ── Mock TeamMemberRepository ──
// 条件更新在锁内完成，语义与 SQL 谓词一致

type mockTeamMemberRepo struct {
	mu      sync.Mutex
	teams   *mockTeamRepo
	members map[string]*model.TeamMember
	seq     int
}

func newMockTeamMemberRepo(teams *mockTeamRepo) *mockTeamMemberRepo {
	return &mockTeamMemberRepo{teams: teams, members: make(map[string]*model.TeamMember)}
}

func (m *mockTeamMemberRepo) Create(_ context.Context, tm *model.TeamMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm.InviteEmail = model.NormalizeEmail(tm.InviteEmail)
	for _, other := range m.members {
		if tm.InviteToken != nil && other.InviteToken != nil && *other.InviteToken == *tm.InviteToken {
			return gorm.ErrDuplicatedKey
		}
		if other.TeamID == tm.TeamID && membershipConflict(&other.MembershipInvite, &tm.MembershipInvite, other.Status, tm.Status, other.UserID, tm.UserID) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if tm.TeamMemberID == "" {
		tm.TeamMemberID = fmt.Sprintf("tm-%d", m.seq)
	}
	tm.CreatedAt = time.Now().UTC()
	cp := *tm
	m.members[tm.TeamMemberID] = &cp
	return nil
}

func (m *mockTeamMemberRepo) GetByID(_ context.Context, id string) (*model.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tm, ok := m.members[id]; ok {
		cp := *tm
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) GetActive(_ context.Context, teamID, userID string) (*model.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tm := range m.members {
		if tm.TeamID == teamID && tm.UserID != nil && *tm.UserID == userID && tm.Status == model.MemberStatusActive {
			cp := *tm
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) ListActive(_ context.Context, teamID string) ([]model.TeamMember, error) {
	return m.filter(func(tm *model.TeamMember) bool {
		return tm.TeamID == teamID && tm.Status == model.MemberStatusActive
	}), nil
}

func (m *mockTeamMemberRepo) ListPendingInvites(_ context.Context, teamID string) ([]model.TeamMember, error) {
	return m.filter(func(tm *model.TeamMember) bool {
		return tm.TeamID == teamID && tm.Status == model.MemberStatusPending && tm.InviteToken != nil
	}), nil
}

func (m *mockTeamMemberRepo) HasPendingInvite(_ context.Context, teamID, email string, now time.Time) (bool, error) {
	list := m.filter(func(tm *model.TeamMember) bool {
		return tm.TeamID == teamID && tm.InviteEmail == model.NormalizeEmail(email) &&
			tm.Status == model.MemberStatusPending && tm.InviteToken != nil && !tm.IsExpired(now)
	})
	return len(list) > 0, nil
}

func (m *mockTeamMemberRepo) ClearExpiredInvites(_ context.Context, teamID, email string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, tm := range m.members {
		if tm.TeamID == teamID && tm.InviteEmail == model.NormalizeEmail(email) &&
			tm.Status == model.MemberStatusPending && tm.InviteExpiresAt != nil && tm.InviteExpiresAt.Before(now) {
			delete(m.members, id)
		}
	}
	return nil
}

func (m *mockTeamMemberRepo) UpdateProfile(_ context.Context, id, title string, skills model.StringArray) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm, ok := m.members[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	tm.Title, tm.Skills = title, skills
	return nil
}

func (m *mockTeamMemberRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members, id)
	return nil
}

func (m *mockTeamMemberRepo) GetByInviteToken(_ context.Context, token string) (*model.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tm := range m.members {
		if tm.InviteToken != nil && *tm.InviteToken == token && tm.Status == model.MemberStatusPending {
			cp := *tm
			cp.Team = m.teams.teams[tm.TeamID]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) ConsumeInvite(_ context.Context, token, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm := m.pending(token, now)
	if tm == nil {
		return pkgerrors.ErrTokenConsumed
	}
	for _, other := range m.members {
		if other.TeamID == tm.TeamID && other.Status == model.MemberStatusActive &&
			other.UserID != nil && *other.UserID == userID {
			return gorm.ErrDuplicatedKey
		}
	}
	uid := userID
	tm.UserID = &uid
	tm.Status = model.MemberStatusActive
	tm.JoinedAt = &now
	tm.RespondedAt = &now
	tm.InviteToken = nil
	return nil
}

func (m *mockTeamMemberRepo) DeclineInvite(_ context.Context, token string, retain bool, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm := m.pending(token, now)
	if tm == nil {
		return pkgerrors.ErrTokenConsumed
	}
	if !retain {
		delete(m.members, tm.TeamMemberID)
		return nil
	}
	tm.Status = model.MemberStatusDeclined
	tm.RespondedAt = &now
	tm.InviteToken = nil
	return nil
}

// pending 调用方需持有锁
func (m *mockTeamMemberRepo) pending(token string, now time.Time) *model.TeamMember {
	for _, tm := range m.members {
		if tm.InviteToken != nil && *tm.InviteToken == token &&
			tm.Status == model.MemberStatusPending && !tm.IsExpired(now) {
			return tm
		}
	}
	return nil
}

// membershipConflict 与迁移中的部分唯一索引对应：同一组织内 active 用户唯一，pending 邮箱唯一
func membershipConflict(a, b *model.MembershipInvite, statusA, statusB string, userA, userB *string) bool {
	if statusA != statusB {
		return false
	}
	switch statusA {
	case model.MemberStatusActive:
		return userA != nil && userB != nil && *userA == *userB
	case model.MemberStatusPending:
		return a.InviteEmail != "" && a.InviteEmail == b.InviteEmail
	}
	return false
}

func (m *mockTeamMemberRepo) filter(keep func(*model.TeamMember) bool) []model.TeamMember {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TeamMember
	for _, tm := range m.members {
		if keep(tm) {
			out = append(out, *tm)
		}
	}
	return out
}

// ── Mock CompanyUserRepository ──

type mockCompanyUserRepo struct {
	mu        sync.Mutex
	companies map[string]*model.Company
	rows      map[string]*model.CompanyUser
	seq       int
}

func newMockCompanyUserRepo() *mockCompanyUserRepo {
	return &mockCompanyUserRepo{
		companies: make(map[string]*model.Company),
		rows:      make(map[string]*model.CompanyUser),
	}
}

func (m *mockCompanyUserRepo) Create(_ context.Context, cu *model.CompanyUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cu.InviteEmail = model.NormalizeEmail(cu.InviteEmail)
	for _, other := range m.rows {
		if cu.InviteToken != nil && other.InviteToken != nil && *other.InviteToken == *cu.InviteToken {
			return gorm.ErrDuplicatedKey
		}
		if other.CompanyID == cu.CompanyID && membershipConflict(&other.MembershipInvite, &cu.MembershipInvite, other.Status, cu.Status, other.UserID, cu.UserID) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if cu.CompanyUserID == "" {
		cu.CompanyUserID = fmt.Sprintf("cu-%d", m.seq)
	}
	cp := *cu
	m.rows[cu.CompanyUserID] = &cp
	return nil
}

func (m *mockCompanyUserRepo) GetActiveByUser(_ context.Context, userID string) (*model.CompanyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cu := range m.rows {
		if cu.UserID != nil && *cu.UserID == userID && cu.Status == model.MemberStatusActive {
			cp := *cu
			cp.Company = m.companies[cu.CompanyID]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyUserRepo) GetActiveMember(_ context.Context, companyID, userID string) (*model.CompanyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cu := range m.rows {
		if cu.CompanyID == companyID && cu.UserID != nil && *cu.UserID == userID && cu.Status == model.MemberStatusActive {
			cp := *cu
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyUserRepo) ListActive(_ context.Context, companyID string) ([]model.CompanyUser, error) {
	return m.filter(func(cu *model.CompanyUser) bool {
		return cu.CompanyID == companyID && cu.Status == model.MemberStatusActive
	}), nil
}

func (m *mockCompanyUserRepo) ListPendingInvites(_ context.Context, companyID string) ([]model.CompanyUser, error) {
	return m.filter(func(cu *model.CompanyUser) bool {
		return cu.CompanyID == companyID && cu.Status == model.MemberStatusPending && cu.InviteToken != nil
	}), nil
}

func (m *mockCompanyUserRepo) HasPendingInvite(_ context.Context, companyID, email string, now time.Time) (bool, error) {
	list := m.filter(func(cu *model.CompanyUser) bool {
		return cu.CompanyID == companyID && cu.InviteEmail == model.NormalizeEmail(email) &&
			cu.Status == model.MemberStatusPending && cu.InviteToken != nil && !cu.IsExpired(now)
	})
	return len(list) > 0, nil
}

func (m *mockCompanyUserRepo) ClearExpiredInvites(_ context.Context, companyID, email string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cu := range m.rows {
		if cu.CompanyID == companyID && cu.InviteEmail == model.NormalizeEmail(email) &&
			cu.Status == model.MemberStatusPending && cu.InviteExpiresAt != nil && cu.InviteExpiresAt.Before(now) {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockCompanyUserRepo) GetByInviteToken(_ context.Context, token string) (*model.CompanyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cu := range m.rows {
		if cu.InviteToken != nil && *cu.InviteToken == token && cu.Status == model.MemberStatusPending {
			cp := *cu
			cp.Company = m.companies[cu.CompanyID]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyUserRepo) ConsumeInvite(_ context.Context, token, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cu := range m.rows {
		if cu.InviteToken != nil && *cu.InviteToken == token &&
			cu.Status == model.MemberStatusPending && !cu.IsExpired(now) {
			for _, other := range m.rows {
				if other.CompanyID == cu.CompanyID && other.Status == model.MemberStatusActive &&
					other.UserID != nil && *other.UserID == userID {
					return gorm.ErrDuplicatedKey
				}
			}
			uid := userID
			cu.UserID = &uid
			cu.Status = model.MemberStatusActive
			cu.JoinedAt = &now
			cu.InviteToken = nil
			return nil
		}
	}
	return pkgerrors.ErrTokenConsumed
}

func (m *mockCompanyUserRepo) DeclineInvite(_ context.Context, token string, _ bool, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cu := range m.rows {
		if cu.InviteToken != nil && *cu.InviteToken == token &&
			cu.Status == model.MemberStatusPending && !cu.IsExpired(now) {
			delete(m.rows, id)
			return nil
		}
	}
	return pkgerrors.ErrTokenConsumed
}

func (m *mockCompanyUserRepo) filter(keep func(*model.CompanyUser) bool) []model.CompanyUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CompanyUser
	for _, cu := range m.rows {
		if keep(cu) {
			out = append(out, *cu)
		}
	}
	return out
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogRepo) List(_ context.Context, filter repository.AuditLogFilter, _ repository.Pagination) ([]model.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AuditLog
	for _, e := range m.entries {
		if filter.Action == "" || e.Action == filter.Action {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockAuditLogRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// ── 组装 ──

type mockRepos struct {
	users       *mockUserRepo
	teams       *mockTeamRepo
	members     *mockTeamMemberRepo
	companyUser *mockCompanyUserRepo
	audit       *mockAuditLogRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:       newMockUserRepo(),
		teams:       newMockTeamRepo(),
		companyUser: newMockCompanyUserRepo(),
		audit:       &mockAuditLogRepo{},
	}
	m.members = newMockTeamMemberRepo(m.teams)
	return &repository.Repository{
		User:        m.users,
		Team:        m.teams,
		TeamMember:  m.members,
		CompanyUser: m.companyUser,
		AuditLog:    m.audit,
	}, m
}

// ── Mock Mailer ──

type mockMailer struct {
	mu          sync.Mutex
	sent        []string
	attachments int
	fail        map[string]bool
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	to := msg.To[0]
	if m.fail[to] {
		return "", fmt.Errorf("mailbox unavailable: %s", to)
	}
	m.sent = append(m.sent, to)
	m.attachments += len(msg.Attachments)
	return "msg-" + to, nil
}

func testLogger() *zap.Logger { return zap.NewNop() }
