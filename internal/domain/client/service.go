package client

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"gorm.io/gorm"

	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/storage"
)

// accessKeyBytes is the entropy behind a generated client key. At 12
// random bytes a collision is negligible, so there is no retry loop;
// a duplicate surfaces as a uniqueness-constraint failure.
const accessKeyBytes = 12

// Service manages the client registry.
type Service struct {
	db *gorm.DB
}

// NewService creates a client registry backed by the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a new client and returns the record including the
// plaintext access key. This is the only time the key is ever shown.
func (s *Service) Create(ctx context.Context, name string) (*storage.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, platformerrors.New(platformerrors.KindValidation, "client.create", "Name is required")
	}

	key, err := generateAccessKey()
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "client.create", "failed to generate access key", err)
	}

	record := &storage.Client{
		Name:      name,
		ClientKey: key,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "client.create", "failed to create client", err)
	}
	return record, nil
}

// List returns all clients, newest first.
func (s *Service) List(ctx context.Context) ([]storage.Client, error) {
	var clients []storage.Client
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "client.list", "failed to list clients", err)
	}
	return clients, nil
}

// Get looks up a single client by id.
func (s *Service) Get(ctx context.Context, id uint) (*storage.Client, error) {
	var record storage.Client
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.New(platformerrors.KindNotFound, "client.get", "Client not found")
	}
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "client.get", "failed to fetch client", err)
	}
	return &record, nil
}

// Delete removes the client row. Deleting an absent id succeeds;
// zero rows affected is not an error. Photo rows and their storage are
// the caller's responsibility and must be reclaimed beforehand.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&storage.Client{}, id).Error; err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "client.delete", "failed to delete client", err)
	}
	return nil
}

// AuthenticateByKey resolves an access key to its client. Knowledge of
// the key is equivalent to authentication as that client.
func (s *Service) AuthenticateByKey(ctx context.Context, key string) (*storage.Client, error) {
	if key == "" {
		return nil, platformerrors.New(platformerrors.KindValidation, "client.authenticate", "Client key required")
	}

	var record storage.Client
	err := s.db.WithContext(ctx).Where("client_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.New(platformerrors.KindAuth, "client.authenticate", "Invalid client key")
	}
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "client.authenticate", "failed to look up client key", err)
	}
	return &record, nil
}

func generateAccessKey() (string, error) {
	buf := make([]byte, accessKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
