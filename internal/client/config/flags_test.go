package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	defaults := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name     string
		args     []string
		expected func() Config
		wantErr  bool
	}{
		{
			name:     "no flags keep defaults",
			expected: defaults,
		},
		{
			name: "all flags",
			args: []string{"-s", "postgres", "-d", "postgres://localhost/ps", "-t", "5", "-g", "gemini", "-m", "smtp", "-l", "debug"},
			expected: func() Config {
				c := defaults()
				c.StorageBackend = "postgres"
				c.StorageDSN = "postgres://localhost/ps"
				c.IdleTimeout = 5 * time.Minute
				c.Generator = "gemini"
				c.Mailer = "smtp"
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-s=memory"},
			expected: func() Config {
				c := defaults()
				c.StorageBackend = "memory"
				return c
			},
		},
		{
			name:    "non numeric timeout",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			cfg := defaults()
			err := parseFlags(&cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}

func TestParseFlags_TimeoutKeptWhenAbsent(t *testing.T) {
	withArgs(t, "-l", "warn")

	cfg := Config{IdleTimeout: 90 * time.Second}
	require.NoError(t, parseFlags(&cfg))
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
}
