package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the Psychic Star CLI.
//
// Units: IdleTimeout, AuthDelay and MockLatency are time.Duration values.
type Config struct {
	StorageBackend string `validate:"oneof=sqlite postgres memory s3 redis"`
	StorageDSN     string
	S3Bucket       string `validate:"required_if=StorageBackend s3"`
	S3Prefix       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	IdleTimeout time.Duration `validate:"gt=0"`
	AuthDelay   time.Duration `validate:"gte=0"`

	HasherScheme string `validate:"oneof=auto sha256 base64 argon2id"`
	HasherSalt   string

	Generator    string `validate:"oneof=mock gemini"`
	GeminiAPIKey string
	GeminiModel  string
	MockLatency  time.Duration `validate:"gte=0"`

	Mailer       string `validate:"oneof=log smtp"`
	SMTPHost     string `validate:"required_if=Mailer smtp"`
	SMTPPort     int    `validate:"gte=0,lte=65535"`
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string `validate:"omitempty,email"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json zap"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = "sqlite"
	c.StorageDSN = "psychicstar.db"
	c.IdleTimeout = 15 * time.Minute
	c.AuthDelay = 800 * time.Millisecond
	c.HasherScheme = "auto"
	c.Generator = "mock"
	c.MockLatency = 1500 * time.Millisecond
	c.Mailer = "log"
	c.SMTPPort = 587
	c.LogLevel = "info"
	c.LogFormat = "text"
}

var (
	errDSNRequired  = errors.New("storage DSN is required")
	errFromRequired = errors.New("smtp sender address is required")
)

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.StorageBackend {
	case "sqlite", "postgres", "redis":
		if c.StorageDSN == "" {
			return fmt.Errorf("invalid config: %w for %s", errDSNRequired, c.StorageBackend)
		}
	}
	if c.Mailer == "smtp" && c.SMTPFrom == "" {
		return fmt.Errorf("invalid config: %w", errFromRequired)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
