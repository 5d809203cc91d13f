// Package mail 事务邮件发送（邀请通知、面试日历）。
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/config"
)

// Attachment 邮件附件
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message 一封邮件
type Message struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer 邮件发送接口；返回服务商分配的消息 ID
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

var (
	ErrNoRecipients = errors.New("mail: no recipients")
	ErrEmptyBody    = errors.New("mail: empty body")
)

// Validate 基础校验
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipients
		}
	}
	if m.Text == "" && m.HTML == "" {
		return ErrEmptyBody
	}
	return nil
}

// New 按配置选择实现：ses 或 log
func New(ctx context.Context, cfg *config.MailConfig, logger *zap.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "log":
		return NewLogMailer(cfg.From, logger), nil
	case "ses":
		return NewSESMailer(ctx, cfg)
	default:
		return nil, fmt.Errorf("mail: unsupported provider %q", cfg.Provider)
	}
}
