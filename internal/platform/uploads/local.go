package uploads

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	platformerrors "gallery-server/internal/platform/errors"
)

// URLPrefix is where locally stored uploads are served from.
const URLPrefix = "/uploads/"

// Local writes uploads to a server-local directory. Locators are
// relative paths under URLPrefix, served statically by the router.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if missing.
func NewLocal(dir string) (*Local, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "uploads.local", "upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "uploads.local", "failed to create upload dir", err)
	}
	return &Local{dir: dir}, nil
}

// Dir exposes the backing directory for static serving.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Store(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uniqueName(originalName, "upload.bin")
	if err := os.WriteFile(filepath.Join(l.dir, filename), data, 0o644); err != nil {
		return "", platformerrors.Wrap(platformerrors.KindStorage, "uploads.local_store", "failed to write upload", err)
	}
	return URLPrefix + filename, nil
}

// Reclaim unlinks the file behind a local locator. Locators outside
// URLPrefix (external URLs) and already-missing files are ignored.
func (l *Local) Reclaim(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(locator, URLPrefix) {
		return nil
	}

	// Base strips any path games that survived sanitisation.
	filename := path.Base(locator)
	err := os.Remove(filepath.Join(l.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return platformerrors.Wrap(platformerrors.KindStorage, "uploads.local_reclaim", "failed to remove upload", err)
	}
	return nil
}

func (l *Local) Name() string { return "local" }
