package photo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/storage"
)

// Service manages the photo registry. Each photo row is owned by
// exactly one client.
type Service struct {
	db *gorm.DB
}

// NewService creates a photo registry backed by the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListForClient returns the client's photos, newest first.
func (s *Service) ListForClient(ctx context.Context, clientID uint) ([]storage.Photo, error) {
	var photos []storage.Photo
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("uploaded_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "photo.list", "failed to list photos", err)
	}
	return photos, nil
}

// Get looks up a single photo by id.
func (s *Service) Get(ctx context.Context, id uint) (*storage.Photo, error) {
	var record storage.Photo
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.New(platformerrors.KindNotFound, "photo.get", "Photo not found")
	}
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "photo.get", "failed to fetch photo", err)
	}
	return &record, nil
}

// Create stores a photo record for an existing client. The HD locator
// falls back to the preview when absent, so it is never empty.
func (s *Service) Create(ctx context.Context, clientID uint, title, previewURL, hdURL string) (*storage.Photo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, platformerrors.New(platformerrors.KindValidation, "photo.create", "Title is required")
	}
	if previewURL == "" {
		return nil, platformerrors.New(platformerrors.KindValidation, "photo.create", "Preview image or URL is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&storage.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "photo.create", "failed to check client", err)
	}
	if count == 0 {
		return nil, platformerrors.New(platformerrors.KindNotFound, "photo.create", "Client not found")
	}

	if hdURL == "" {
		hdURL = previewURL
	}

	record := &storage.Photo{
		ClientID:   clientID,
		Title:      title,
		PreviewURL: previewURL,
		HDURL:      hdURL,
		UploadedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "photo.create", "failed to create photo", err)
	}
	return record, nil
}

// Delete removes the photo row. Deleting an absent id succeeds; the
// caller reclaims the underlying storage separately.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&storage.Photo{}, id).Error; err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "photo.delete", "failed to delete photo", err)
	}
	return nil
}

// DeleteForClient removes all photo rows owned by a client.
func (s *Service) DeleteForClient(ctx context.Context, clientID uint) error {
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&storage.Photo{}).Error; err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "photo.delete_for_client", "failed to delete client photos", err)
	}
	return nil
}
