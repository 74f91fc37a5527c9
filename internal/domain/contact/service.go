package contact

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/logging"
	"gallery-server/internal/platform/mail"
	"gallery-server/internal/platform/storage"
)

// Service stores inbound inquiries and relays best-effort notifications.
type Service struct {
	db       *gorm.DB
	notifier mail.Notifier
	logger   *logging.Logger
}

// NewService creates the contact intake service.
func NewService(db *gorm.DB, notifier mail.Notifier, logger *logging.Logger) *Service {
	return &Service{
		db:       db,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit validates and persists an inquiry, then notifies the studio.
// The notification is detached: its failure is logged and never affects
// the stored message or the caller's response.
func (s *Service) Submit(ctx context.Context, name, email, subject, message string) (*storage.ContactMessage, error) {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		strings.TrimSpace(subject) == "" ||
		strings.TrimSpace(message) == "" {
		return nil, platformerrors.New(platformerrors.KindValidation, "contact.submit", "All fields are required")
	}

	record := &storage.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "contact.submit", "failed to save contact message", err)
	}

	mail.Dispatch(s.notifier, s.logger, "New contact inquiry",
		fmt.Sprintf("From: %s <%s>\nSubject: %s\nMessage: %s", name, email, subject, message))

	return record, nil
}
