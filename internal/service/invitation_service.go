package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/config"
	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
)

// 邀请种类
const (
	InvitationKindTeam    = "team"
	InvitationKindCompany = "company"
)

// 响应动作
const (
	InvitationActionAccept  = "accept"
	InvitationActionDecline = "decline"
)

const defaultInvitationTTL = 7 * 24 * time.Hour

// TokenGenerator 邀请令牌生成器
type TokenGenerator interface {
	Generate() (string, error)
}

// InvitationService 团队 / 公司邀请业务接口
type InvitationService interface {
	InviteToTeam(ctx context.Context, p *auth.Principal, teamID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	ListTeamInvitations(ctx context.Context, p *auth.Principal, teamID string) ([]dto.InvitationResponse, error)
	InviteToCompany(ctx context.Context, p *auth.Principal, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	ListCompanyInvitations(ctx context.Context, p *auth.Principal) ([]dto.InvitationResponse, error)
	// Lookup 无需登录；不存在与已使用的令牌返回同一个 ErrInvitationNotFound
	Lookup(ctx context.Context, token string) (*dto.InvitationLookupResponse, error)
	// Respond 接受需要登录（p 非空），拒绝不需要
	Respond(ctx context.Context, p *auth.Principal, token string, req *dto.RespondInvitationRequest) (*dto.InvitationResultResponse, error)
}

type invitationService struct {
	cfg      *config.InvitationConfig
	repo     *repository.Repository
	tokens   TokenGenerator
	notifier *notifier
	audit    AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// NewInvitationService 创建 InvitationService 实例
func NewInvitationService(
	cfg *config.InvitationConfig,
	repo *repository.Repository,
	tokens TokenGenerator,
	notifier *notifier,
	audit AuditService,
	logger *zap.Logger,
) InvitationService {
	return &invitationService{
		cfg:      cfg,
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
		now:      utcNow,
	}
}

// pendingInvitation 团队 / 公司邀请的统一视图
type pendingInvitation struct {
	kind      string
	orgID     string
	orgName   string
	role      string
	invite    model.MembershipInvite
	createdAt time.Time
}

// ────────────────────── 发出邀请 ──────────────────────

func (s *invitationService) InviteToTeam(ctx context.Context, p *auth.Principal, teamID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	team, err := loadTeam(ctx, s.repo, s.logger, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, teamID); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.TeamRoleMember
	}
	if role != model.TeamRoleAdmin && role != model.TeamRoleMember {
		return nil, ErrInvalidRole
	}

	email := model.NormalizeEmail(req.Email)
	now := s.now()
	if err := s.checkNotMember(ctx, email, func(userID string) (bool, error) {
		m, err := activeTeamMember(ctx, s.repo, teamID, userID)
		return m != nil, err
	}); err != nil {
		return nil, err
	}
	hasPending := func() (bool, error) {
		return s.repo.TeamMember.HasPendingInvite(ctx, teamID, email, now)
	}
	if err := s.checkNoPending(hasPending, func() error {
		return s.repo.TeamMember.ClearExpiredInvites(ctx, teamID, email, now)
	}); err != nil {
		return nil, err
	}

	member := &model.TeamMember{
		TeamID: teamID,
		Role:   role,
		Status: model.MemberStatusPending,
	}
	err = s.issue(ctx, p, email, now, &member.MembershipInvite, hasPending, func() error {
		member.TeamMemberID = ""
		return s.repo.TeamMember.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return s.afterIssue(ctx, p, pendingInvitation{
		kind:      InvitationKindTeam,
		orgID:     teamID,
		orgName:   team.Name,
		role:      role,
		invite:    member.MembershipInvite,
		createdAt: member.CreatedAt,
	}, member.TeamMemberID, req.Message), nil
}

func (s *invitationService) InviteToCompany(ctx context.Context, p *auth.Principal, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !cu.CanManage() {
		return nil, ErrForbidden
	}

	role := req.Role
	if role == "" {
		role = model.CompanyRoleMember
	}
	if role == model.CompanyRoleOwner {
		return nil, ErrInvalidRole
	}

	email := model.NormalizeEmail(req.Email)
	now := s.now()
	if err := s.checkNotMember(ctx, email, func(userID string) (bool, error) {
		_, err := s.repo.CompanyUser.GetActiveMember(ctx, cu.CompanyID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return err == nil, err
	}); err != nil {
		return nil, err
	}
	hasPending := func() (bool, error) {
		return s.repo.CompanyUser.HasPendingInvite(ctx, cu.CompanyID, email, now)
	}
	if err := s.checkNoPending(hasPending, func() error {
		return s.repo.CompanyUser.ClearExpiredInvites(ctx, cu.CompanyID, email, now)
	}); err != nil {
		return nil, err
	}

	invitee := &model.CompanyUser{
		CompanyID: cu.CompanyID,
		Role:      role,
		Status:    model.MemberStatusPending,
	}
	err = s.issue(ctx, p, email, now, &invitee.MembershipInvite, hasPending, func() error {
		invitee.CompanyUserID = ""
		return s.repo.CompanyUser.Create(ctx, invitee)
	})
	if err != nil {
		return nil, err
	}

	orgName := ""
	if cu.Company != nil {
		orgName = cu.Company.Name
	}
	return s.afterIssue(ctx, p, pendingInvitation{
		kind:      InvitationKindCompany,
		orgID:     cu.CompanyID,
		orgName:   orgName,
		role:      role,
		invite:    invitee.MembershipInvite,
		createdAt: invitee.CreatedAt,
	}, invitee.CompanyUserID, req.Message), nil
}

// checkNotMember 受邀邮箱已注册且已是成员时返回 ErrAlreadyMember
func (s *invitationService) checkNotMember(ctx context.Context, email string, isMember func(userID string) (bool, error)) error {
	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询受邀用户失败", zap.Error(err))
		return err
	}
	ok, err := isMember(user.UserID)
	if err != nil {
		s.logger.Error("查询成员关系失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	if ok {
		return ErrAlreadyMember
	}
	return nil
}

// checkNoPending 已有未过期邀请时返回 ErrDuplicateInvitation，否则清理该邮箱的过期邀请
func (s *invitationService) checkNoPending(hasPending func() (bool, error), clearExpired func() error) error {
	pending, err := hasPending()
	if err != nil {
		s.logger.Error("检查待处理邀请失败", zap.Error(err))
		return err
	}
	if pending {
		return ErrDuplicateInvitation
	}
	if err := clearExpired(); err != nil {
		s.logger.Error("清理过期邀请失败", zap.Error(err))
		return err
	}
	return nil
}

// issue 生成令牌并写入；唯一索引冲突时若已有 pending 邀请则返回 ErrDuplicateInvitation，否则换新令牌重试
func (s *invitationService) issue(ctx context.Context, p *auth.Principal, email string, now time.Time, inv *model.MembershipInvite, hasPending func() (bool, error), create func() error) error {
	ttl := s.cfg.TTL
	if ttl <= 0 {
		ttl = defaultInvitationTTL
	}
	attempts := s.cfg.MaxTokenAttempts
	if attempts <= 0 {
		attempts = 3
	}

	expiresAt := now.Add(ttl)
	invitedBy := p.UserID
	inv.InviteEmail = email
	inv.InviteExpiresAt = &expiresAt
	inv.InvitedBy = &invitedBy

	for i := 0; i < attempts; i++ {
		tok, err := s.tokens.Generate()
		if err != nil {
			s.logger.Error("生成邀请令牌失败", zap.Error(err))
			return err
		}
		inv.InviteToken = &tok

		err = create()
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("写入邀请失败", zap.String("email", email), zap.Error(err))
			return err
		}
		pending, pendErr := hasPending()
		if pendErr != nil {
			s.logger.Error("检查待处理邀请失败", zap.String("email", email), zap.Error(pendErr))
			return pendErr
		}
		if pending {
			return ErrDuplicateInvitation
		}
		s.logger.Warn("邀请令牌冲突，重新生成", zap.Int("attempt", i+1))
	}
	return ErrTokenExhausted
}

// afterIssue 发送通知邮件、写审计并组装响应；邮件失败不影响结果
func (s *invitationService) afterIssue(ctx context.Context, p *auth.Principal, inv pendingInvitation, rowID, message string) *dto.InvitationResponse {
	tok := *inv.invite.InviteToken
	expiresAt := formatTimePtr(inv.invite.InviteExpiresAt)

	sent := s.notifier.sendInvitation(ctx, invitationMail{
		To:        inv.invite.InviteEmail,
		OrgKind:   inv.kind,
		OrgName:   inv.orgName,
		Inviter:   s.displayName(ctx, p.UserID, p.Email),
		Role:      inv.role,
		Message:   message,
		Token:     tok,
		ExpiresAt: expiresAt,
	})

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditInvitationIssued,
		EntityType: inv.kind,
		EntityID:   inv.orgID,
		Metadata: map[string]interface{}{
			"invitationId": rowID,
			"email":        inv.invite.InviteEmail,
			"role":         inv.role,
			"emailSent":    sent,
		},
	})

	return &dto.InvitationResponse{
		ID:        rowID,
		Kind:      inv.kind,
		Email:     inv.invite.InviteEmail,
		Role:      inv.role,
		Status:    model.MemberStatusPending,
		ExpiresAt: expiresAt,
		InviteURL: s.notifier.inviteURL(tok),
		EmailSent: &sent,
		CreatedAt: formatTime(inv.createdAt),
	}
}

// ────────────────────── 待处理列表 ──────────────────────

func (s *invitationService) ListTeamInvitations(ctx context.Context, p *auth.Principal, teamID string) ([]dto.InvitationResponse, error) {
	if _, err := loadTeam(ctx, s.repo, s.logger, teamID); err != nil {
		return nil, err
	}
	if err := requireTeamManager(ctx, s.repo, p, teamID); err != nil {
		return nil, err
	}

	rows, err := s.repo.TeamMember.ListPendingInvites(ctx, teamID)
	if err != nil {
		s.logger.Error("查询团队邀请失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	now := s.now()
	list := make([]dto.InvitationResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		list = append(list, invitationListItem(InvitationKindTeam, r.TeamMemberID, r.Role, r.Status, &r.MembershipInvite, r.CreatedAt, now))
	}
	return list, nil
}

func (s *invitationService) ListCompanyInvitations(ctx context.Context, p *auth.Principal) ([]dto.InvitationResponse, error) {
	cu, err := callerCompany(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !cu.CanManage() {
		return nil, ErrForbidden
	}

	rows, err := s.repo.CompanyUser.ListPendingInvites(ctx, cu.CompanyID)
	if err != nil {
		s.logger.Error("查询公司邀请失败", zap.String("company_id", cu.CompanyID), zap.Error(err))
		return nil, err
	}
	now := s.now()
	list := make([]dto.InvitationResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		list = append(list, invitationListItem(InvitationKindCompany, r.CompanyUserID, r.Role, r.Status, &r.MembershipInvite, r.CreatedAt, now))
	}
	return list, nil
}

// invitationListItem 列表项不回显令牌
func invitationListItem(kind, id, role, status string, inv *model.MembershipInvite, createdAt, now time.Time) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:        id,
		Kind:      kind,
		Email:     inv.InviteEmail,
		Role:      role,
		Status:    model.DerivedStatus(status, inv, now),
		ExpiresAt: formatTimePtr(inv.InviteExpiresAt),
		CreatedAt: formatTime(createdAt),
	}
}

// ────────────────────── Lookup ──────────────────────

func (s *invitationService) Lookup(ctx context.Context, token string) (*dto.InvitationLookupResponse, error) {
	inv, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if inv.invite.IsExpired(now) {
		return nil, ErrInvitationExpired
	}

	resp := &dto.InvitationLookupResponse{
		Kind:             inv.kind,
		OrganizationID:   inv.orgID,
		OrganizationName: inv.orgName,
		Role:             inv.role,
		Email:            inv.invite.InviteEmail,
		ExpiresAt:        formatTimePtr(inv.invite.InviteExpiresAt),
		Status:           model.MemberStatusPending,
	}
	if inv.invite.InvitedBy != nil {
		resp.InvitedBy = s.displayName(ctx, *inv.invite.InvitedBy, "")
	}
	return resp, nil
}

// ────────────────────── Respond ──────────────────────

func (s *invitationService) Respond(ctx context.Context, p *auth.Principal, token string, req *dto.RespondInvitationRequest) (*dto.InvitationResultResponse, error) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != InvitationActionAccept && action != InvitationActionDecline {
		return nil, ErrInvalidAction
	}

	inv, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if inv.invite.IsExpired(now) {
		return nil, ErrInvitationExpired
	}

	if action == InvitationActionDecline {
		return s.decline(ctx, p, token, inv, now)
	}
	return s.accept(ctx, p, token, inv, now)
}

func (s *invitationService) accept(ctx context.Context, p *auth.Principal, token string, inv *pendingInvitation, now time.Time) (*dto.InvitationResultResponse, error) {
	if p == nil {
		return nil, ErrAuthRequired
	}
	if inv.invite.InviteEmail != "" && inv.invite.InviteEmail != model.NormalizeEmail(p.Email) {
		return nil, ErrInviteEmailMismatch
	}

	var (
		consumeErr error
		result     *dto.InvitationResultResponse
	)
	switch inv.kind {
	case InvitationKindTeam:
		m, err := activeTeamMember(ctx, s.repo, inv.orgID, p.UserID)
		if err != nil {
			s.logger.Error("查询成员关系失败", zap.String("team_id", inv.orgID), zap.Error(err))
			return nil, err
		}
		if m != nil {
			return nil, s.alreadyMember(ctx, token)
		}
		consumeErr = s.repo.TeamMember.ConsumeInvite(ctx, token, p.UserID, now)
		result = &dto.InvitationResultResponse{
			Message:    "You have joined " + inv.orgName,
			RedirectTo: "/teams/" + inv.orgID,
		}
	default:
		_, err := s.repo.CompanyUser.GetActiveMember(ctx, inv.orgID, p.UserID)
		if err == nil {
			return nil, s.alreadyMember(ctx, token)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询成员关系失败", zap.String("company_id", inv.orgID), zap.Error(err))
			return nil, err
		}
		consumeErr = s.repo.CompanyUser.ConsumeInvite(ctx, token, p.UserID, now)
		result = &dto.InvitationResultResponse{
			Message:    "You have joined " + inv.orgName,
			RedirectTo: "/company/dashboard",
		}
	}
	if errors.Is(consumeErr, gorm.ErrDuplicatedKey) {
		// 另一条邀请已被并发接受，唯一索引拒绝第二条 active 记录
		return nil, ErrAlreadyMember
	}
	if consumeErr != nil {
		return nil, s.classifyConsumeError(ctx, token, consumeErr)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditInvitationAccepted,
		EntityType: inv.kind,
		EntityID:   inv.orgID,
		Metadata:   map[string]interface{}{"role": inv.role},
	})
	return result, nil
}

func (s *invitationService) decline(ctx context.Context, p *auth.Principal, token string, inv *pendingInvitation, now time.Time) (*dto.InvitationResultResponse, error) {
	var err error
	if inv.kind == InvitationKindTeam {
		err = s.repo.TeamMember.DeclineInvite(ctx, token, s.cfg.RetainDeclined, now)
	} else {
		err = s.repo.CompanyUser.DeclineInvite(ctx, token, s.cfg.RetainDeclined, now)
	}
	if err != nil {
		return nil, s.classifyConsumeError(ctx, token, err)
	}

	entry := AuditEntry{
		Action:     model.AuditInvitationDeclined,
		EntityType: inv.kind,
		EntityID:   inv.orgID,
		Metadata:   map[string]interface{}{"email": inv.invite.InviteEmail},
	}
	if p != nil {
		entry.ActorID = p.UserID
	}
	s.audit.Record(ctx, entry)

	return &dto.InvitationResultResponse{Message: "Invitation declined"}, nil
}

// classifyConsumeError 条件更新未命中时重新读取令牌：仍存在且过期 → 410，其余一律 404
func (s *invitationService) classifyConsumeError(ctx context.Context, token string, err error) error {
	if !errors.Is(err, pkgerrors.ErrTokenConsumed) {
		s.logger.Error("处理邀请失败", zap.Error(err))
		return err
	}
	inv, findErr := s.find(ctx, token)
	if findErr == nil && inv.invite.IsExpired(s.now()) {
		return ErrInvitationExpired
	}
	return ErrInvitationNotFound
}

// alreadyMember 令牌已被并发请求消费时统一返回 404，否则 409
func (s *invitationService) alreadyMember(ctx context.Context, token string) error {
	if _, err := s.find(ctx, token); errors.Is(err, ErrInvitationNotFound) {
		return ErrInvitationNotFound
	}
	return ErrAlreadyMember
}

// ── 内部辅助方法 ──

// find 先查团队邀请再查公司邀请；只返回仍持有令牌的 pending 记录
func (s *invitationService) find(ctx context.Context, token string) (*pendingInvitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationNotFound
	}

	tm, err := s.repo.TeamMember.GetByInviteToken(ctx, token)
	if err == nil {
		inv := &pendingInvitation{
			kind:      InvitationKindTeam,
			orgID:     tm.TeamID,
			role:      tm.Role,
			invite:    tm.MembershipInvite,
			createdAt: tm.CreatedAt,
		}
		if tm.Team != nil {
			inv.orgName = tm.Team.Name
		}
		return inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询团队邀请失败", zap.Error(err))
		return nil, err
	}

	cu, err := s.repo.CompanyUser.GetByInviteToken(ctx, token)
	if err == nil {
		inv := &pendingInvitation{
			kind:      InvitationKindCompany,
			orgID:     cu.CompanyID,
			role:      cu.Role,
			invite:    cu.MembershipInvite,
			createdAt: cu.CreatedAt,
		}
		if cu.Company != nil {
			inv.orgName = cu.Company.Name
		}
		return inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询公司邀请失败", zap.Error(err))
		return nil, err
	}
	return nil, ErrInvitationNotFound
}

// displayName 用户姓名；查询失败时回退为 fallback
func (s *invitationService) displayName(ctx context.Context, userID, fallback string) string {
	u, err := s.repo.User.GetByID(ctx, userID)
	if err != nil || u.Name == "" {
		return fallback
	}
	return u.Name
}
