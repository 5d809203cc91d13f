package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ezhulati/liftout-platform-sub008/internal/auth"
	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/internal/model"
	"github.com/ezhulati/liftout-platform-sub008/internal/repository"
	"github.com/ezhulati/liftout-platform-sub008/pkg/calendar"
)

const defaultInterviewMinutes = 60

// interviewableStatuses 可安排面试的申请状态
var interviewableStatuses = []string{
	model.ApplicationStatusSubmitted,
	model.ApplicationStatusReviewing,
	model.ApplicationStatusInterviewing,
}

// InterviewService 面试业务接口
type InterviewService interface {
	// Schedule 创建面试、推进申请到 interviewing，并向每位参与者发送日历邀请
	Schedule(ctx context.Context, p *auth.Principal, applicationID string, req *dto.ScheduleInterviewRequest) (*dto.ScheduleInterviewResponse, error)
	List(ctx context.Context, p *auth.Principal, applicationID string) ([]dto.InterviewResponse, error)
	// Calendar 返回面试的 .ics 内容
	Calendar(ctx context.Context, p *auth.Principal, interviewID string) ([]byte, error)
}

type interviewService struct {
	repo     *repository.Repository
	notifier *notifier
	audit    AuditService
	logger   *zap.Logger
	now      func() time.Time
	buildICS func(calendar.Event, time.Time) ([]byte, error)
}

// NewInterviewService 创建 InterviewService 实例
func NewInterviewService(repo *repository.Repository, notifier *notifier, audit AuditService, logger *zap.Logger) InterviewService {
	return &interviewService{
		repo: repo, notifier: notifier, audit: audit, logger: logger,
		now: utcNow, buildICS: calendar.BuildRequest,
	}
}

// ────────────────────── Schedule ──────────────────────

func (s *interviewService) Schedule(ctx context.Context, p *auth.Principal, applicationID string, req *dto.ScheduleInterviewRequest) (*dto.ScheduleInterviewResponse, error) {
	app, err := s.loadApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Opportunity == nil {
		return nil, ErrOpportunityNotFound
	}
	if err := requireCompanyMember(ctx, s.repo, p, app.Opportunity.CompanyID); err != nil {
		return nil, err
	}
	if !containsString(interviewableStatuses, app.Status) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	start, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil || !start.After(now) {
		return nil, ErrInvalidSchedule
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultInterviewMinutes
	}

	iv := &model.Interview{
		ApplicationID:   applicationID,
		ScheduledAt:     start.UTC(),
		DurationMinutes: duration,
		Location:        strings.TrimSpace(req.Location),
		MeetingURL:      strings.TrimSpace(req.MeetingURL),
		Notes:           req.Notes,
		Attendees:       model.StringArray(normalizeAttendees(req.Attendees)),
		CreatedBy:       p.UserID,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Interview.Create(ctx, iv); err != nil {
			return err
		}
		if app.Status == model.ApplicationStatusInterviewing {
			return nil
		}
		return tx.Application.Transition(ctx, applicationID, interviewableStatuses, model.ApplicationStatusInterviewing, nil)
	})
	if err != nil {
		if !errors.Is(err, ErrStaleState) {
			s.logger.Error("安排面试失败", zap.String("application_id", applicationID), zap.Error(err))
		}
		return nil, err
	}

	iv.Application = app
	var deliveries []dto.DeliveryResult
	ics, err := s.buildICS(s.event(iv, p), now)
	if err != nil {
		// 面试已创建，日历失败时逐个收件人报告未送达
		s.logger.Error("生成面试日历失败", zap.String("interview_id", iv.InterviewID), zap.Error(err))
		deliveries = failedDeliveries(iv.Attendees, "calendar invite not generated: "+err.Error())
	} else {
		subject := "Interview: " + s.title(app)
		text := fmt.Sprintf("You are invited to an interview on %s (%d minutes).",
			iv.ScheduledAt.Format(time.RFC1123), iv.DurationMinutes)
		deliveries = s.notifier.sendCalendar(ctx, subject, text, ics, iv.Attendees)
	}

	sent := 0
	for _, d := range deliveries {
		if d.Success {
			sent++
		}
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:    p.UserID,
		Action:     model.AuditInterviewScheduled,
		EntityType: "application",
		EntityID:   applicationID,
		Metadata: map[string]interface{}{
			"interviewId": iv.InterviewID,
			"attendees":   len(iv.Attendees),
			"delivered":   sent,
		},
	})

	return &dto.ScheduleInterviewResponse{
		Interview:  toInterviewResponse(iv),
		Deliveries: deliveries,
	}, nil
}

// ────────────────────── Query ──────────────────────

func (s *interviewService) List(ctx context.Context, p *auth.Principal, applicationID string) ([]dto.InterviewResponse, error) {
	app, err := s.loadApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEitherSide(ctx, p, app); err != nil {
		return nil, err
	}

	ivs, err := s.repo.Interview.ListByApplication(ctx, applicationID)
	if err != nil {
		s.logger.Error("查询面试列表失败", zap.String("application_id", applicationID), zap.Error(err))
		return nil, err
	}
	list := make([]dto.InterviewResponse, 0, len(ivs))
	for i := range ivs {
		list = append(list, toInterviewResponse(&ivs[i]))
	}
	return list, nil
}

func (s *interviewService) Calendar(ctx context.Context, p *auth.Principal, interviewID string) ([]byte, error) {
	iv, err := s.repo.Interview.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		s.logger.Error("查询面试失败", zap.String("interview_id", interviewID), zap.Error(err))
		return nil, err
	}
	if iv.Application == nil {
		return nil, ErrApplicationNotFound
	}
	if err := s.requireEitherSide(ctx, p, iv.Application); err != nil {
		return nil, err
	}

	return s.buildICS(s.event(iv, nil), s.now())
}

// ── 内部辅助方法 ──

// event UID 由面试 ID 派生，重复生成时日历客户端视为同一事件
func (s *interviewService) event(iv *model.Interview, organizer *auth.Principal) calendar.Event {
	e := calendar.Event{
		UID:         iv.InterviewID + "@liftout",
		Summary:     "Interview",
		Description: iv.Notes,
		Location:    iv.Location,
		URL:         iv.MeetingURL,
		Start:       iv.ScheduledAt,
		Duration:    time.Duration(iv.DurationMinutes) * time.Minute,
		Attendees:   iv.Attendees,
	}
	if iv.Application != nil {
		e.Summary = "Interview: " + s.title(iv.Application)
	}
	if organizer != nil {
		e.Organizer = organizer.Email
	}
	if e.Location == "" && e.URL != "" {
		e.Location = e.URL
	}
	return e
}

func (s *interviewService) title(app *model.TeamApplication) string {
	parts := make([]string, 0, 2)
	if app.Team != nil {
		parts = append(parts, app.Team.Name)
	}
	if app.Opportunity != nil {
		parts = append(parts, app.Opportunity.Title)
	}
	if len(parts) == 0 {
		return app.ApplicationID
	}
	return strings.Join(parts, " / ")
}

func (s *interviewService) requireEitherSide(ctx context.Context, p *auth.Principal, app *model.TeamApplication) error {
	err := requireTeamMember(ctx, s.repo, p, app.TeamID)
	if err == nil || !errors.Is(err, ErrForbidden) {
		return err
	}
	if app.Opportunity == nil {
		return ErrForbidden
	}
	return requireCompanyMember(ctx, s.repo, p, app.Opportunity.CompanyID)
}

func (s *interviewService) loadApplication(ctx context.Context, id string) (*model.TeamApplication, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("application_id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

// normalizeAttendees 邮箱小写去重
func normalizeAttendees(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = model.NormalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
