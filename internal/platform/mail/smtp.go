package mail

import (
	"context"

	"gopkg.in/gomail.v2"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
)

// SMTP sends notifications through a plain SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTP builds an SMTP notifier from the email configuration.
func NewSMTP(cfg config.EmailConfig) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (s *SMTP) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", s.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return platformerrors.Wrap(platformerrors.KindTransport, "mail.smtp_send", "failed to send mail", err)
	}
	return nil
}

func (s *SMTP) Name() string { return "smtp" }
