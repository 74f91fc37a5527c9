package uploads

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
)

// S3 uploads bytes to an S3-compatible object store. Reclaim is a
// deliberate no-op: remote objects are never deleted, an accepted
// asymmetry of the provider abstraction.
type S3 struct {
	client     *minio.Client
	bucket     string
	region     string
	publicBase string
}

// NewS3 connects to the configured endpoint or AWS itself.
func NewS3(cfg config.S3Uploads) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "uploads.s3", "bucket is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.Region == "" {
			return nil, platformerrors.New(platformerrors.KindConfig, "uploads.s3", "region or endpoint is required")
		}
		endpoint = fmt.Sprintf("s3.%s.amazonaws.com", cfg.Region)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "uploads.s3", "failed to init s3 client", err)
	}

	return &S3{
		client:     client,
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

func (s *S3) Store(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	key := "uploads/" + uniqueName(originalName, "upload.bin")

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.KindStorage, "uploads.s3_store", "failed to put object", err)
	}

	if s.publicBase != "" {
		return s.publicBase + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Reclaim leaves remote objects in place.
func (s *S3) Reclaim(ctx context.Context, locator string) error {
	return nil
}

func (s *S3) Name() string { return "s3" }
