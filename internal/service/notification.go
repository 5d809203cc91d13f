package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ezhulati/liftout-platform-sub008/internal/dto"
	"github.com/ezhulati/liftout-platform-sub008/pkg/calendar"
	"github.com/ezhulati/liftout-platform-sub008/pkg/mail"
)

// notifier 邮件通知：邀请链接与面试日历。发送失败只记日志，不影响业务结果。
type notifier struct {
	mailer      mail.Mailer
	baseURL     string
	concurrency int
	logger      *zap.Logger
}

func newNotifier(mailer mail.Mailer, baseURL string, concurrency int, logger *zap.Logger) *notifier {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &notifier{
		mailer:      mailer,
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
		logger:      logger,
	}
}

// inviteURL 前端邀请落地页地址
func (n *notifier) inviteURL(token string) string {
	return n.baseURL + "/invites/" + token
}

// invitationMail 邀请邮件参数
type invitationMail struct {
	To        string
	OrgKind   string
	OrgName   string
	Inviter   string
	Role      string
	Message   string
	Token     string
	ExpiresAt string
}

// sendInvitation 发送邀请通知，返回是否发送成功
func (n *notifier) sendInvitation(ctx context.Context, m invitationMail) bool {
	if n.mailer == nil {
		return false
	}
	link := n.inviteURL(m.Token)
	subject := fmt.Sprintf("You're invited to join %s on Liftout", m.OrgName)

	var text strings.Builder
	fmt.Fprintf(&text, "%s invited you to join the %s %q as %s.\n\n", m.Inviter, m.OrgKind, m.OrgName, m.Role)
	if m.Message != "" {
		fmt.Fprintf(&text, "%s\n\n", m.Message)
	}
	fmt.Fprintf(&text, "Accept or decline: %s\nThis invitation expires at %s.\n", link, m.ExpiresAt)

	body := fmt.Sprintf(
		`<p>%s invited you to join the %s <strong>%s</strong> as %s.</p>`,
		html.EscapeString(m.Inviter), m.OrgKind, html.EscapeString(m.OrgName), html.EscapeString(m.Role),
	)
	if m.Message != "" {
		body += "<p>" + html.EscapeString(m.Message) + "</p>"
	}
	body += fmt.Sprintf(`<p><a href="%s">Respond to invitation</a></p><p>Expires at %s.</p>`,
		html.EscapeString(link), html.EscapeString(m.ExpiresAt))

	id, err := n.mailer.Send(ctx, mail.Message{
		To:      []string{m.To},
		Subject: subject,
		Text:    text.String(),
		HTML:    body,
	})
	if err != nil {
		n.logger.Warn("发送邀请邮件失败", zap.String("to", m.To), zap.Error(err))
		return false
	}
	n.logger.Info("邀请邮件已发送", zap.String("to", m.To), zap.String("message_id", id))
	return true
}

// sendCalendar 向每位参与者单独发送带 .ics 附件的邮件。
// 发送并发执行且数量受限；每位参与者的结果互不影响。
func (n *notifier) sendCalendar(ctx context.Context, subject, text string, ics []byte, attendees []string) []dto.DeliveryResult {
	if n.mailer == nil {
		return failedDeliveries(attendees, "mailer not configured")
	}

	results := make([]dto.DeliveryResult, len(attendees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.concurrency)
	for i, to := range attendees {
		g.Go(func() error {
			id, err := n.mailer.Send(gctx, mail.Message{
				To:      []string{to},
				Subject: subject,
				Text:    text,
				Attachments: []mail.Attachment{{
					Filename:    calendar.Filename,
					ContentType: calendar.ContentType,
					Data:        ics,
				}},
			})

			res := dto.DeliveryResult{Email: to, Success: err == nil, MessageID: id}
			if err != nil {
				res.MessageID = ""
				res.Error = err.Error()
				n.logger.Warn("发送面试日历失败", zap.String("to", to), zap.Error(err))
			}
			results[i] = res
			// 单个失败不取消其余发送
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// failedDeliveries 为每位收件人生成一条失败记录
func failedDeliveries(attendees []string, reason string) []dto.DeliveryResult {
	results := make([]dto.DeliveryResult, len(attendees))
	for i, to := range attendees {
		results[i] = dto.DeliveryResult{Email: to, Error: reason}
	}
	return results
}
