package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "gallery-server/internal/platform/errors"
)

// Loader reads configuration from an optional YAML file and the environment.
// Environment variables always win over file values.
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader with the default search behaviour.
func NewLoader() *Loader {
	return &Loader{useDotEnv: true}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the YAML config location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Load produces the effective configuration.
func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		// Missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	cfg := Default()

	path := l.path
	if path == "" {
		path = envString("CONFIG_PATH", "config.yaml")
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig, "config.load", "invalid config file", err)
		}
	}

	applyEnv(cfg)

	if cfg.Uploads.MaxBytes <= 0 {
		cfg.Uploads.MaxBytes = 10 << 20
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 12 * time.Hour
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = envInt("PORT", cfg.Server.Port)
	if origins := os.Getenv("CLIENT_ORIGIN"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.Server.AllowedOrigins = cfg.Server.AllowedOrigins[:0]
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.Auth.AdminPassword = envString("ADMIN_PASSWORD", cfg.Auth.AdminPassword)
	cfg.Auth.JWTSecret = envString("JWT_SECRET", cfg.Auth.JWTSecret)

	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Dir = envString("LOG_DIR", cfg.Log.Dir)
	cfg.Log.File = envString("LOG_FILE", cfg.Log.File)

	cfg.Store.DBPath = envString("DB_PATH", cfg.Store.DBPath)

	cfg.Uploads.Provider = strings.ToLower(envString("STORAGE_PROVIDER", cfg.Uploads.Provider))
	cfg.Uploads.Local.Dir = envString("UPLOAD_DIR", cfg.Uploads.Local.Dir)
	cfg.Uploads.S3.Region = envString("S3_REGION", cfg.Uploads.S3.Region)
	cfg.Uploads.S3.Endpoint = envString("S3_ENDPOINT", cfg.Uploads.S3.Endpoint)
	cfg.Uploads.S3.AccessKeyID = envString("S3_ACCESS_KEY_ID", cfg.Uploads.S3.AccessKeyID)
	cfg.Uploads.S3.SecretAccessKey = envString("S3_SECRET_ACCESS_KEY", cfg.Uploads.S3.SecretAccessKey)
	cfg.Uploads.S3.Bucket = envString("S3_BUCKET", cfg.Uploads.S3.Bucket)
	cfg.Uploads.S3.PublicBase = envString("S3_PUBLIC_BASE", cfg.Uploads.S3.PublicBase)
	cfg.Uploads.Cloudinary.CloudName = envString("CLOUDINARY_CLOUD_NAME", cfg.Uploads.Cloudinary.CloudName)
	cfg.Uploads.Cloudinary.APIKey = envString("CLOUDINARY_API_KEY", cfg.Uploads.Cloudinary.APIKey)
	cfg.Uploads.Cloudinary.APISecret = envString("CLOUDINARY_API_SECRET", cfg.Uploads.Cloudinary.APISecret)
	cfg.Uploads.Cloudinary.Folder = envString("CLOUDINARY_FOLDER", cfg.Uploads.Cloudinary.Folder)

	cfg.Email.Provider = strings.ToLower(envString("EMAIL_PROVIDER", cfg.Email.Provider))
	cfg.Email.From = envString("EMAIL_FROM", cfg.Email.From)
	cfg.Email.To = envString("EMAIL_TO", cfg.Email.To)
	cfg.Email.SMTP.Host = envString("SMTP_HOST", cfg.Email.SMTP.Host)
	cfg.Email.SMTP.Port = envInt("SMTP_PORT", cfg.Email.SMTP.Port)
	cfg.Email.SMTP.Username = envString("SMTP_USER", cfg.Email.SMTP.Username)
	cfg.Email.SMTP.Password = envString("SMTP_PASS", cfg.Email.SMTP.Password)
	cfg.Email.SendGrid.APIKey = envString("SENDGRID_API_KEY", cfg.Email.SendGrid.APIKey)
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
