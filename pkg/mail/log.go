package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogMailer 仅记录日志的实现（开发环境 / 未配置 SES）
type LogMailer struct {
	from   string
	logger *zap.Logger
}

// NewLogMailer 创建日志邮件器
func NewLogMailer(from string, logger *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// Send 写日志并返回合成的消息 ID
func (m *LogMailer) Send(_ context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	id := "log-" + uuid.NewString()

	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	m.logger.Info("邮件（仅日志，未实际发送）",
		zap.String("message_id", id),
		zap.String("from", m.from),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Strings("attachments", names),
	)
	return id, nil
}
