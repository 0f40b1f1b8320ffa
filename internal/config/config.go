package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	S3      S3Config
	Upload  UploadConfig
	Log     LogConfig
	Client  ClientConfig
}

type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

type DBConfig struct {
	Driver string
	DSN    string
}

type StorageConfig struct {
	Driver       string
	LocalDir     string
	PublicPrefix string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

type UploadConfig struct {
	MaxSize        int64
	AllowedFormats []string
}

type LogConfig struct {
	Level string
	File  string
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads defaults, an optional config file and the environment, in that
// order of increasing precedence.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "file:schools.db?_pragma=busy_timeout(5000)")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads/schoolImages")
	v.SetDefault("STORAGE_PUBLIC_PREFIX", "/schoolImages")
	v.SetDefault("S3_ENDPOINT", "localhost:9000")
	v.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_BUCKET_NAME", "school-images")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("UPLOAD_MAX_SIZE", 5*1024*1024) // 5MB
	v.SetDefault("UPLOAD_ALLOWED_FORMATS", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("CLIENT_BASE_URL", "http://localhost:5000")
	v.SetDefault("CLIENT_TIMEOUT", 30*time.Second)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("SERVER_HOST"),
			Port:        v.GetString("SERVER_PORT"),
			CORSOrigins: v.GetStringSlice("CORS_ORIGINS"),
		},
		DB: DBConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DB_DSN"),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalDir:     v.GetString("STORAGE_LOCAL_DIR"),
			PublicPrefix: "/" + strings.Trim(v.GetString("STORAGE_PUBLIC_PREFIX"), "/"),
		},
		S3: S3Config{
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          v.GetBool("S3_USE_SSL"),
			BucketName:      v.GetString("S3_BUCKET_NAME"),
			Region:          v.GetString("S3_REGION"),
		},
		Upload: UploadConfig{
			MaxSize:        v.GetInt64("UPLOAD_MAX_SIZE"),
			AllowedFormats: v.GetStringSlice("UPLOAD_ALLOWED_FORMATS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimRight(v.GetString("CLIENT_BASE_URL"), "/"),
			Timeout: v.GetDuration("CLIENT_TIMEOUT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	// The image prefix shares the router with the API routes.
	switch p := c.Storage.PublicPrefix; {
	case p == "/":
		return fmt.Errorf("storage public prefix must not be the root path")
	case p == "/api" || strings.HasPrefix(p, "/api/") || p == "/health":
		return fmt.Errorf("storage public prefix %q collides with API routes", p)
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown db driver %q", c.DB.Driver)
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload max size must be positive, got %d", c.Upload.MaxSize)
	}
	return nil
}

// EnsureDirs creates the local image directory when the local backend is used.
func EnsureDirs(cfg *Config) error {
	if cfg.Storage.Driver != "local" {
		return nil
	}
	if err := os.MkdirAll(cfg.Storage.LocalDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.Storage.LocalDir, err)
	}
	return nil
}
