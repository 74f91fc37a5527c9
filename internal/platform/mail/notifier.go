package mail

import (
	"context"
	"fmt"
	"time"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/logging"
)

// dispatchTimeout bounds a detached notification send so a stalled
// provider cannot leak goroutines indefinitely.
const dispatchTimeout = 30 * time.Second

// Notifier delivers studio notifications. Sends are always best-effort:
// callers log failures and never surface them to API callers.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
	Name() string
}

// FromConfig selects the notification provider once at startup.
// Missing from/to addresses degrade to the disabled notifier, matching
// the "best effort or nothing" contract.
func FromConfig(cfg config.EmailConfig, logger *logging.Logger) (Notifier, error) {
	if cfg.Provider == "" || cfg.Provider == "none" || cfg.From == "" || cfg.To == "" {
		return &Disabled{}, nil
	}

	switch cfg.Provider {
	case "smtp":
		if cfg.SMTP.Host == "" {
			return nil, platformerrors.New(platformerrors.KindConfig, "mail.from_config", "smtp host is required")
		}
		return NewSMTP(cfg), nil
	case "sendgrid":
		if cfg.SendGrid.APIKey == "" {
			logger.WarnTag("Mail", "sendgrid selected without an API key, notifications disabled")
			return &Disabled{}, nil
		}
		return NewSendGrid(cfg), nil
	default:
		return nil, platformerrors.New(platformerrors.KindConfig, "mail.from_config",
			fmt.Sprintf("unknown email provider %q", cfg.Provider))
	}
}

// Dispatch fires a notification on a detached goroutine. A failed send
// is logged and swallowed; it never reaches the request that caused it.
func Dispatch(notifier Notifier, logger *logging.Logger, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := notifier.Send(ctx, subject, body); err != nil {
			logger.WarnTag("Mail", "notification send failed (%s): %v", notifier.Name(), err)
		}
	}()
}

// Disabled swallows every notification.
type Disabled struct{}

func (d *Disabled) Send(context.Context, string, string) error { return nil }

func (d *Disabled) Name() string { return "none" }
