package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasknotify/domain"
)

type mockSESAPI struct {
	mock.Mock
}

func (m *mockSESAPI) SendEmail(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

func TestSESMailer_Send(t *testing.T) {
	api := &mockSESAPI{}
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "noreply@example.com" &&
			len(in.Destination.ToAddresses) == 1 &&
			in.Destination.ToAddresses[0] == "ada@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Task Overdue Notification" &&
			aws.ToString(in.Message.Body.Text.Data) == "body" &&
			in.Message.Body.Html == nil
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil).Once()

	mailer := NewSESMailer(api, "noreply@example.com", nil)
	err := mailer.Send(context.Background(), domain.EmailMessage{
		To:      "ada@example.com",
		Subject: "Task Overdue Notification",
		Body:    "body",
	})

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestSESMailer_SendError(t *testing.T) {
	api := &mockSESAPI{}
	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("MessageRejected")).Once()

	mailer := NewSESMailer(api, "noreply@example.com", nil)
	err := mailer.Send(context.Background(), domain.EmailMessage{To: "ada@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MessageRejected")
}

func TestSESMailer_RejectsEmptyRecipient(t *testing.T) {
	api := &mockSESAPI{}
	mailer := NewSESMailer(api, "noreply@example.com", nil)

	err := mailer.Send(context.Background(), domain.EmailMessage{})

	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	api.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}
