package service

import (
	"errors"

	pkgerrors "github.com/ezhulati/liftout-platform-sub008/pkg/errors"
)

// ── 业务错误 ──
// 错误文案直接返回给客户端；Handler 通过 errors.Is 映射 HTTP 状态码。

// 通用
var (
	ErrForbidden  = errors.New("You do not have permission to perform this action")
	ErrStaleState = pkgerrors.ErrStaleState
)

// 认证
var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrUserSuspended       = errors.New("Account is suspended")
	ErrEmailTaken          = errors.New("Email is already registered")
	ErrCompanyNameRequired = errors.New("companyName is required for company accounts")
	ErrInvalidToken        = errors.New("Invalid or expired token")
	ErrUserNotFound        = errors.New("User not found")
)

// 团队与公司
var (
	ErrTeamNotFound      = errors.New("Team not found")
	ErrMemberNotFound    = errors.New("Team member not found")
	ErrCannotRemoveOwner = errors.New("The team owner cannot be removed")
	ErrIndividualOnly    = errors.New("Only individual accounts can create teams")
	ErrCompanyNotFound   = errors.New("Company not found")
	ErrNotCompanyMember  = errors.New("You are not an active member of a company")
	ErrInvalidRange      = errors.New("Minimum must not exceed maximum")
)

// 招聘机会
var (
	ErrOpportunityNotFound = errors.New("Opportunity not found")
	ErrInvalidTransition   = errors.New("Status transition is not allowed")
)

// 申请、Offer 与面试
var (
	ErrApplicationNotFound = errors.New("Application not found")
	ErrApplicationExists   = errors.New("This team has already applied to this opportunity")
	ErrOpportunityNotOpen  = errors.New("Opportunity is not open for applications")
	ErrListScopeRequired   = errors.New("teamId or opportunityId is required")
	ErrInvalidStartDate    = errors.New("startDate must be formatted as YYYY-MM-DD")
	ErrInterviewNotFound   = errors.New("Interview not found")
	ErrInvalidSchedule     = errors.New("scheduledAt must be an RFC3339 timestamp in the future")
)

// 邀请
var (
	ErrInvitationNotFound  = errors.New("Invitation not found or already used")
	ErrInvitationExpired   = errors.New("Invitation has expired")
	ErrInvalidAction       = errors.New("Invalid action. Must be 'accept' or 'decline'")
	ErrAuthRequired        = errors.New("Please sign in to accept this invitation")
	ErrInviteEmailMismatch = errors.New("This invitation was sent to a different email address")
	ErrAlreadyMember       = errors.New("You are already a member")
	ErrDuplicateInvitation = errors.New("A pending invitation already exists for this email")
	ErrInvalidRole         = errors.New("Invalid role for this invitation")
	ErrTokenExhausted      = errors.New("could not allocate a unique invitation token")
)
