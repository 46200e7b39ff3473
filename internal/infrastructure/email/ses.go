package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/internal/config"
)

const charset = "UTF-8"

// SendEmailAPI is the part of the SES client used by SESMailer.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends plain-text email through Amazon SES from a fixed sender.
type SESMailer struct {
	api    SendEmailAPI
	from   string
	logger *zap.Logger
}

// NewSESClient builds an SES client from the email configuration. Static credentials
// take precedence over the default AWS credential chain when both keys are set.
func NewSESClient(ctx context.Context, cfg config.EmailConfig) (*ses.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ses.NewFromConfig(awsCfg), nil
}

func NewSESMailer(api SendEmailAPI, from string, logger *zap.Logger) *SESMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SESMailer{api: api, from: from, logger: logger}
}

// Send submits one message with a single destination address.
func (m *SESMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if m == nil || m.api == nil {
		return errors.New("ses mailer not configured")
	}
	if msg.To == "" {
		return domain.NewError(domain.ErrCodeInvalid, "recipient address is empty")
	}

	out, err := m.api.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charset)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}

	m.logger.Debug("email accepted by ses", zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}
