package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("default port = %d, expected 4000", cfg.Server.Port)
	}
	if cfg.Uploads.Provider != "local" {
		t.Errorf("default storage provider = %q, expected local", cfg.Uploads.Provider)
	}
	if cfg.Email.Provider != "none" {
		t.Errorf("default email provider = %q, expected none", cfg.Email.Provider)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("default token TTL = %v, expected 12h", cfg.Auth.TokenTTL)
	}
	if cfg.Uploads.MaxBytes != 10<<20 {
		t.Errorf("default upload cap = %d, expected 10MB", cfg.Uploads.MaxBytes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("STORAGE_PROVIDER", "S3")
	t.Setenv("CLIENT_ORIGIN", "https://a.example, https://b.example ,")

	cfg, err := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, expected 9090", cfg.Server.Port)
	}
	if cfg.Auth.AdminPassword != "hunter2" {
		t.Errorf("admin password not overridden")
	}
	if cfg.Uploads.Provider != "s3" {
		t.Errorf("provider = %q, expected lowercased s3", cfg.Uploads.Provider)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, expected %v", cfg.Server.AllowedOrigins, want)
	}
	for i, origin := range want {
		if cfg.Server.AllowedOrigins[i] != origin {
			t.Errorf("origin[%d] = %q, expected %q", i, cfg.Server.AllowedOrigins[i], origin)
		}
	}
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 5000\nauth:\n  jwt_secret: from-file\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := NewLoader().WithDotEnv(false).WithPath(path).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("port = %d, expected file value 5000", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("jwt secret = %q, expected env to win", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := NewLoader().WithDotEnv(false).WithPath(path).Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
