package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/psychicstar/internal/flagx"
	"github.com/dmitrijs2005/psychicstar/internal/timex"
)

// FileConfig is the on-disk form of Config. Durations use timex.Duration so
// files can give them as "15m" or as integer nanoseconds.
type FileConfig struct {
	StorageBackend string `json:"storage_backend" yaml:"storage_backend"`
	StorageDSN     string `json:"storage_dsn" yaml:"storage_dsn"`
	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix"`
	S3Region       string `json:"s3_region" yaml:"s3_region"`
	S3Endpoint     string `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey    string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key" yaml:"s3_secret_key"`

	IdleTimeout timex.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	AuthDelay   timex.Duration `json:"auth_delay" yaml:"auth_delay"`

	HasherScheme string `json:"hasher_scheme" yaml:"hasher_scheme"`
	HasherSalt   string `json:"hasher_salt" yaml:"hasher_salt"`

	Generator    string         `json:"generator" yaml:"generator"`
	GeminiAPIKey string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel  string         `json:"gemini_model" yaml:"gemini_model"`
	MockLatency  timex.Duration `json:"mock_latency" yaml:"mock_latency"`

	Mailer       string `json:"mailer" yaml:"mailer"`
	SMTPHost     string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int    `json:"smtp_port" yaml:"smtp_port"`
	SMTPUsername string `json:"smtp_username" yaml:"smtp_username"`
	SMTPPassword string `json:"smtp_password" yaml:"smtp_password"`
	SMTPFrom     string `json:"smtp_from" yaml:"smtp_from"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

func toFile(c *Config) FileConfig {
	return FileConfig{
		StorageBackend: c.StorageBackend,
		StorageDSN:     c.StorageDSN,
		S3Bucket:       c.S3Bucket,
		S3Prefix:       c.S3Prefix,
		S3Region:       c.S3Region,
		S3Endpoint:     c.S3Endpoint,
		S3AccessKey:    c.S3AccessKey,
		S3SecretKey:    c.S3SecretKey,
		IdleTimeout:    timex.Duration{Duration: c.IdleTimeout},
		AuthDelay:      timex.Duration{Duration: c.AuthDelay},
		HasherScheme:   c.HasherScheme,
		HasherSalt:     c.HasherSalt,
		Generator:      c.Generator,
		GeminiAPIKey:   c.GeminiAPIKey,
		GeminiModel:    c.GeminiModel,
		MockLatency:    timex.Duration{Duration: c.MockLatency},
		Mailer:         c.Mailer,
		SMTPHost:       c.SMTPHost,
		SMTPPort:       c.SMTPPort,
		SMTPUsername:   c.SMTPUsername,
		SMTPPassword:   c.SMTPPassword,
		SMTPFrom:       c.SMTPFrom,
		LogLevel:       c.LogLevel,
		LogFormat:      c.LogFormat,
	}
}

func (fc FileConfig) apply(c *Config) {
	c.StorageBackend = fc.StorageBackend
	c.StorageDSN = fc.StorageDSN
	c.S3Bucket = fc.S3Bucket
	c.S3Prefix = fc.S3Prefix
	c.S3Region = fc.S3Region
	c.S3Endpoint = fc.S3Endpoint
	c.S3AccessKey = fc.S3AccessKey
	c.S3SecretKey = fc.S3SecretKey
	c.IdleTimeout = fc.IdleTimeout.Duration
	c.AuthDelay = fc.AuthDelay.Duration
	c.HasherScheme = fc.HasherScheme
	c.HasherSalt = fc.HasherSalt
	c.Generator = fc.Generator
	c.GeminiAPIKey = fc.GeminiAPIKey
	c.GeminiModel = fc.GeminiModel
	c.MockLatency = fc.MockLatency.Duration
	c.Mailer = fc.Mailer
	c.SMTPHost = fc.SMTPHost
	c.SMTPPort = fc.SMTPPort
	c.SMTPUsername = fc.SMTPUsername
	c.SMTPPassword = fc.SMTPPassword
	c.SMTPFrom = fc.SMTPFrom
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
}

// parseFile overlays cfg with the values of the file named by -c/-config or
// $PSYCHICSTAR_CONFIG. Keys missing from the file keep their current value.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFile()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fc := toFile(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}
