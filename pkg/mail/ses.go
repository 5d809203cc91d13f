package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ezhulati/liftout-platform-sub008/config"
)

// sendEmailAPI sesv2.Client 的最小子集，便于测试替换
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer 基于 AWS SES v2 的实现
// 统一以 Raw MIME 发送，便于携带 .ics 附件
type SESMailer struct {
	client sendEmailAPI
	from   string
}

// NewSESMailer 创建 SES 客户端
// 配置了静态密钥时使用静态凭证，否则走默认凭证链（环境变量、IAM 角色）
func NewSESMailer(ctx context.Context, cfg *config.MailConfig) (*SESMailer, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKey != "" || cfg.AWSSecretKey != "" {
		if cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" {
			return nil, errors.New("mail: aws_access_key and aws_secret_key must be set together")
		}
		cred := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSSessionToken)
		opts = append(opts, awsconfig.WithCredentialsProvider(cred))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: load aws config: %w", err)
	}

	return &SESMailer{client: sesv2.NewFromConfig(awsCfg), from: cfg.From}, nil
}

// Send 发送邮件
func (m *SESMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	raw, err := buildRaw(m.from, msg)
	if err != nil {
		return "", err
	}

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return "", fmt.Errorf("mail: ses send: %w", err)
	}
	if out == nil || out.MessageId == nil {
		return "", errors.New("mail: ses returned no message id")
	}
	return *out.MessageId, nil
}
