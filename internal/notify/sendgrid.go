package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends emails through the SendGrid v3 API
type SendGridSender struct {
	client sendGridClient
	from   Sender
	logger *zap.Logger
}

func NewSendGridSender(apiKey string, from Sender, logger *zap.Logger) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	message := mail.NewSingleEmail(
		mail.NewEmail(s.from.Name, s.from.Email),
		msg.Subject,
		mail.NewEmail(msg.ToName, msg.To),
		text,
		msg.HTML,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	s.logger.Info("email sent via sendgrid",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("status", response.StatusCode),
	)
	return nil
}

var _ EmailSender = (*SendGridSender)(nil)
