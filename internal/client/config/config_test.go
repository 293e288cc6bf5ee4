package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/psychicstar/internal/flagx"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
	t.Setenv(flagx.ConfigEnvVar, "")
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.StorageBackend)
	assert.Equal(t, "psychicstar.db", c.StorageDSN)
	assert.Equal(t, 15*time.Minute, c.IdleTimeout)
	assert.Equal(t, 800*time.Millisecond, c.AuthDelay)
	assert.Equal(t, "auto", c.HasherScheme)
	assert.Equal(t, "mock", c.Generator)
	assert.Equal(t, "log", c.Mailer)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_DefaultsWithoutSources(t *testing.T) {
	withArgs(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storage_backend":"memory","log_level":"warn"}`), 0o600))
	withArgs(t, "-c", path, "-l", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	withArgs(t, "-s", "floppy")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "memory without dsn", mutate: func(c *Config) { c.StorageBackend, c.StorageDSN = "memory", "" }},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.StorageDSN = "" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.StorageBackend = "s3" }, wantErr: true},
		{name: "s3 with bucket", mutate: func(c *Config) { c.StorageBackend, c.S3Bucket = "s3", "readings" }},
		{name: "zero idle timeout", mutate: func(c *Config) { c.IdleTimeout = 0 }, wantErr: true},
		{name: "unknown generator", mutate: func(c *Config) { c.Generator = "tarot" }, wantErr: true},
		{name: "unknown hasher", mutate: func(c *Config) { c.HasherScheme = "md5" }, wantErr: true},
		{name: "smtp without host", mutate: func(c *Config) { c.Mailer, c.SMTPFrom = "smtp", "oracle@example.com" }, wantErr: true},
		{name: "smtp without sender", mutate: func(c *Config) { c.Mailer, c.SMTPHost = "smtp", "smtp.example.com" }, wantErr: true},
		{
			name: "smtp complete",
			mutate: func(c *Config) {
				c.Mailer, c.SMTPHost, c.SMTPFrom = "smtp", "smtp.example.com", "oracle@example.com"
			},
		},
		{
			name: "smtp bad sender",
			mutate: func(c *Config) {
				c.Mailer, c.SMTPHost, c.SMTPFrom = "smtp", "smtp.example.com", "oracle"
			},
			wantErr: true,
		},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
