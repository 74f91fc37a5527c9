package uploads

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/logging"
)

// Provider durably persists uploaded bytes and returns a locator the
// photo registry stores as-is. Reclaim releases the bytes behind a
// locator; remote providers keep it as a documented no-op.
type Provider interface {
	Store(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Reclaim(ctx context.Context, locator string) error
	Name() string
}

// FromConfig selects the single active provider for the process.
func FromConfig(cfg config.UploadsConfig, logger *logging.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocal(cfg.Local.Dir)
	case "s3":
		return NewS3(cfg.S3)
	case "cloudinary":
		return NewCloudinary(cfg.Cloudinary)
	default:
		return nil, platformerrors.New(platformerrors.KindConfig, "uploads.from_config",
			fmt.Sprintf("unknown storage provider %q", cfg.Provider))
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var whitespace = regexp.MustCompile(`\s+`)

// safeFileName strips everything that could escape the upload dir or
// confuse a URL: whitespace collapses to "-", any character outside
// [A-Za-z0-9_.-] is dropped.
func safeFileName(original string) string {
	name := whitespace.ReplaceAllString(original, "-")
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

// uniqueName prefixes the sanitised filename so two uploads of the
// same file never collide.
func uniqueName(originalName, fallback string) string {
	base := safeFileName(originalName)
	if base == "" {
		base = fallback
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), strings.Split(uuid.NewString(), "-")[0], base)
}
