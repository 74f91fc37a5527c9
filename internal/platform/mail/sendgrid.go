package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
)

// SendGrid sends notifications through the SendGrid v3 API.
type SendGrid struct {
	client *sendgrid.Client
	from   string
	to     string
}

// NewSendGrid builds a SendGrid notifier from the email configuration.
func NewSendGrid(cfg config.EmailConfig) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(cfg.SendGrid.APIKey),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (s *SendGrid) Send(ctx context.Context, subject, body string) error {
	from := sgmail.NewEmail("", s.from)
	to := sgmail.NewEmail("", s.to)
	message := sgmail.NewSingleEmail(from, subject, to, body, body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindTransport, "mail.sendgrid_send", "failed to send mail", err)
	}
	if response.StatusCode >= http.StatusBadRequest {
		return platformerrors.New(platformerrors.KindTransport, "mail.sendgrid_send",
			fmt.Sprintf("sendgrid rejected the message with status %d", response.StatusCode))
	}
	return nil
}

func (s *SendGrid) Name() string { return "sendgrid" }
