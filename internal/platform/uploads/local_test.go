package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gallery-server/internal/platform/config"
	"gallery-server/internal/platform/logging"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"holiday photo.jpg", "holiday-photo.jpg"},
		{"  spaced   name .png", "-spaced-name-.png"},
		{"../../etc/passwd", "....etcpasswd"},
		{"über-cool?.jpg", "ber-cool.jpg"},
		{"simple_name.JPG", "simple_name.JPG"},
	}

	for _, tt := range tests {
		if got := safeFileName(tt.in); got != tt.expected {
			t.Errorf("safeFileName(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestLocalStoreAndReclaim(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	provider, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}

	locator, err := provider.Store(ctx, []byte("image-bytes"), "sunset.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if !strings.HasPrefix(locator, URLPrefix) {
		t.Fatalf("locator %q does not start with %q", locator, URLPrefix)
	}
	if !strings.HasSuffix(locator, "sunset.jpg") {
		t.Errorf("locator %q lost the original filename", locator)
	}

	onDisk := filepath.Join(dir, strings.TrimPrefix(locator, URLPrefix))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored bytes = %q", data)
	}

	if err := provider.Reclaim(ctx, locator); err != nil {
		t.Fatalf("Reclaim error: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Error("file still exists after reclaim")
	}
}

func TestLocalReclaimIsIdempotentAndScoped(t *testing.T) {
	ctx := context.Background()
	provider, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}

	// Missing file is not an error.
	if err := provider.Reclaim(ctx, URLPrefix+"never-stored.jpg"); err != nil {
		t.Errorf("reclaim of missing file should succeed, got %v", err)
	}
	// External locators are left alone.
	if err := provider.Reclaim(ctx, "https://cdn.example.com/x.jpg"); err != nil {
		t.Errorf("reclaim of external locator should be a no-op, got %v", err)
	}
}

func TestLocalStoreFallbackName(t *testing.T) {
	provider, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}

	locator, err := provider.Store(context.Background(), []byte("x"), "???", "application/octet-stream")
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if !strings.HasSuffix(locator, "upload.bin") {
		t.Errorf("locator %q should fall back to upload.bin for unusable names", locator)
	}
}

func TestFromConfigSelectsProvider(t *testing.T) {
	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}

	local, err := FromConfig(config.UploadsConfig{Provider: "local", Local: config.LocalUploads{Dir: t.TempDir()}}, logger)
	if err != nil {
		t.Fatalf("FromConfig(local) error: %v", err)
	}
	if local.Name() != "local" {
		t.Errorf("provider = %q, expected local", local.Name())
	}

	if _, err := FromConfig(config.UploadsConfig{Provider: "gopher-drive"}, logger); err == nil {
		t.Error("expected error for unknown provider")
	}
}
