// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/guestbook-hq/guestbook-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// PublicBaseURL is the externally reachable base URL used to build
	// absolute URIs for stored images.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL" yaml:"public_base_url"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// UploadConfig holds file upload storage configuration.
type UploadConfig struct {
	// Backend selects the file storage implementation: "local" or "s3".
	Backend string `mapstructure:"BACKEND" yaml:"backend"`
	// TempDir is where incoming uploads are parked before promotion.
	TempDir string `mapstructure:"TEMP_DIR" yaml:"temp_dir"`
	// Dir is the permanent storage root for the local backend.
	Dir string `mapstructure:"DIR" yaml:"dir"`
	// S3 settings (also usable against any S3-compatible endpoint such as R2).
	S3AccountID       string `mapstructure:"S3_ACCOUNT_ID" yaml:"s3_account_id"`
	S3Bucket          string `mapstructure:"S3_BUCKET" yaml:"s3_bucket"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID" yaml:"s3_access_key_id"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY" yaml:"s3_secret_access_key"`
}

// ValidationPolicy is the single canonical rule set applied to guestbook
// submissions. The limits are configuration, not code, so the policy is
// explicit and testable rather than scattered across validators.
type ValidationPolicy struct {
	NameMinLen            int   `mapstructure:"NAME_MIN_LEN" yaml:"name_min_len"`
	NameMaxLen            int   `mapstructure:"NAME_MAX_LEN" yaml:"name_max_len"`
	PhoneDigits           int   `mapstructure:"PHONE_DIGITS" yaml:"phone_digits"`
	FeedbackMaxLen        int   `mapstructure:"FEEDBACK_MAX_LEN" yaml:"feedback_max_len"`
	AvatarMaxBytes        int64 `mapstructure:"AVATAR_MAX_BYTES" yaml:"avatar_max_bytes"`
	FeedbackImageMaxBytes int64 `mapstructure:"FEEDBACK_IMAGE_MAX_BYTES" yaml:"feedback_image_max_bytes"`
}

// DefaultValidationPolicy returns the canonical submission rule set:
// name 2..100 characters, phone exactly 10 digits, feedback up to 5000
// characters, avatar capped at 2 MiB and feedback image at 5 MiB.
func DefaultValidationPolicy() ValidationPolicy {
	return ValidationPolicy{
		NameMinLen:            2,
		NameMaxLen:            100,
		PhoneDigits:           10,
		FeedbackMaxLen:        5000,
		AvatarMaxBytes:        2 * 1024 * 1024,
		FeedbackImageMaxBytes: 5 * 1024 * 1024,
	}
}

// Config aggregates all application configuration sections.
type Config struct {
	Server     ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"DATABASE" yaml:"database"`
	Upload     UploadConfig     `mapstructure:"UPLOAD" yaml:"upload"`
	Validation ValidationPolicy `mapstructure:"VALIDATION" yaml:"validation"`
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	policy := DefaultValidationPolicy()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "guestbook_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("UPLOAD.BACKEND", "local")
	v.SetDefault("UPLOAD.TEMP_DIR", "uploads/tmp")
	v.SetDefault("UPLOAD.DIR", "uploads/files")
	v.SetDefault("VALIDATION.NAME_MIN_LEN", policy.NameMinLen)
	v.SetDefault("VALIDATION.NAME_MAX_LEN", policy.NameMaxLen)
	v.SetDefault("VALIDATION.PHONE_DIGITS", policy.PhoneDigits)
	v.SetDefault("VALIDATION.FEEDBACK_MAX_LEN", policy.FeedbackMaxLen)
	v.SetDefault("VALIDATION.AVATAR_MAX_BYTES", policy.AvatarMaxBytes)
	v.SetDefault("VALIDATION.FEEDBACK_IMAGE_MAX_BYTES", policy.FeedbackImageMaxBytes)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.PUBLIC_BASE_URL", "PUBLIC_BASE_URL"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"UPLOAD.BACKEND", "UPLOAD_BACKEND"},
		{"UPLOAD.TEMP_DIR", "UPLOAD_TEMP_DIR"},
		{"UPLOAD.DIR", "UPLOAD_DIR"},
		{"UPLOAD.S3_ACCOUNT_ID", "UPLOAD_S3_ACCOUNT_ID"},
		{"UPLOAD.S3_BUCKET", "UPLOAD_S3_BUCKET"},
		{"UPLOAD.S3_ACCESS_KEY_ID", "UPLOAD_S3_ACCESS_KEY_ID"},
		{"UPLOAD.S3_SECRET_ACCESS_KEY", "UPLOAD_S3_SECRET_ACCESS_KEY"},
		{"VALIDATION.PHONE_DIGITS", "VALIDATION_PHONE_DIGITS"},
		{"VALIDATION.AVATAR_MAX_BYTES", "VALIDATION_AVATAR_MAX_BYTES"},
		{"VALIDATION.FEEDBACK_IMAGE_MAX_BYTES", "VALIDATION_FEEDBACK_IMAGE_MAX_BYTES"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db", logger.MaskConnectionString(cfg.Database.URL()),
		"upload_backend", cfg.Upload.Backend,
	)
	return &cfg, nil
}

// validate rejects configurations that would misbehave at runtime.
func (c *Config) validate() error {
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid environment: %q", c.Server.Environment)
	}

	switch c.Upload.Backend {
	case "local":
	case "s3":
		if c.Upload.S3Bucket == "" || c.Upload.S3AccessKeyID == "" {
			return fmt.Errorf("s3 upload backend requires bucket and credentials")
		}
	default:
		return fmt.Errorf("invalid upload backend: %q", c.Upload.Backend)
	}

	p := c.Validation
	if p.NameMinLen < 1 || p.NameMaxLen < p.NameMinLen {
		return fmt.Errorf("invalid name length bounds: [%d, %d]", p.NameMinLen, p.NameMaxLen)
	}
	if p.PhoneDigits < 1 {
		return fmt.Errorf("phone digit count must be positive, got %d", p.PhoneDigits)
	}
	if p.AvatarMaxBytes <= 0 || p.FeedbackImageMaxBytes <= 0 {
		return fmt.Errorf("file size limits must be positive")
	}
	return nil
}
