package uploads

import (
	"bytes"
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
)

// Cloudinary streams uploads to the managed image service. The locator
// is the service's returned secure URL. Reclaim is a no-op, the same
// asymmetry as the S3 provider.
type Cloudinary struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds the provider from API credentials.
func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "uploads.cloudinary", "cloud name, api key and api secret are required")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "uploads.cloudinary", "failed to init cloudinary client", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "photography/uploads"
	}

	return &Cloudinary{client: client, folder: folder}, nil
}

func (c *Cloudinary) Store(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	result, err := c.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.KindStorage, "uploads.cloudinary_store", "failed to upload image", err)
	}
	if result.Error.Message != "" {
		return "", platformerrors.New(platformerrors.KindStorage, "uploads.cloudinary_store", result.Error.Message)
	}
	return result.SecureURL, nil
}

// Reclaim leaves remote assets in place.
func (c *Cloudinary) Reclaim(ctx context.Context, locator string) error {
	return nil
}

func (c *Cloudinary) Name() string { return "cloudinary" }
