package config

import "time"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Uploads UploadsConfig `yaml:"uploads"`
	Email   EmailConfig   `yaml:"email"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	AdminPassword string        `yaml:"admin_password"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type StoreConfig struct {
	DBPath string `yaml:"db_path"`
}

// UploadsConfig selects the active storage provider and its credentials.
// Exactly one provider is used per process lifetime.
type UploadsConfig struct {
	Provider   string           `yaml:"provider"`
	MaxBytes   int64            `yaml:"max_bytes"`
	Local      LocalUploads     `yaml:"local"`
	S3         S3Uploads        `yaml:"s3"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
}

type LocalUploads struct {
	Dir string `yaml:"dir"`
}

type S3Uploads struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	PublicBase      string `yaml:"public_base"`
	UseSSL          bool   `yaml:"use_ssl"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

// EmailConfig selects the notification provider. "none" disables sending.
type EmailConfig struct {
	Provider string         `yaml:"provider"`
	From     string         `yaml:"from"`
	To       string         `yaml:"to"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	SendGrid SendGridConfig `yaml:"sendgrid"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SendGridConfig struct {
	APIKey string `yaml:"api_key"`
}

// Default returns the configuration used when nothing is provided.
// Values mirror the development defaults of the original deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           4000,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth: AuthConfig{
			AdminPassword: "admin2025",
			JWTSecret:     "dev-secret-change-me",
			TokenTTL:      12 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			DBPath: "data/gallery.db",
		},
		Uploads: UploadsConfig{
			Provider: "local",
			MaxBytes: 10 << 20,
			Local: LocalUploads{
				Dir: "data/uploads",
			},
			S3: S3Uploads{
				UseSSL: true,
			},
			Cloudinary: CloudinaryConfig{
				Folder: "photography/uploads",
			},
		},
		Email: EmailConfig{
			Provider: "none",
			SMTP: SMTPConfig{
				Port: 587,
			},
		},
	}
}
