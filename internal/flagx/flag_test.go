package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-s", "memory"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.yaml", "-s", "memory"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.yaml"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-t", "-l", "debug"},
			allowedFlags: []string{"-t", "-l"},
			want:         []string{"-t", "-l", "debug"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-s", "sqlite", "-c", "conf.json", "-d", "app.db"},
			allowedFlags: []string{"-s", "-d"},
			want:         []string{"-s", "sqlite", "-d", "app.db"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", "a.json", "-s", "memory"}
		assert.Equal(t, "a.json", ConfigFile())
	})

	t.Run("long flag with equals", func(t *testing.T) {
		os.Args = []string{"cmd", "-config=b.yaml"}
		assert.Equal(t, "b.yaml", ConfigFile())
	})

	t.Run("env fallback", func(t *testing.T) {
		os.Args = []string{"cmd"}
		t.Setenv(ConfigEnvVar, "env.json")
		assert.Equal(t, "env.json", ConfigFile())
	})

	t.Run("flag wins over env", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", "flag.json"}
		t.Setenv(ConfigEnvVar, "env.json")
		assert.Equal(t, "flag.json", ConfigFile())
	})

	t.Run("nothing set", func(t *testing.T) {
		os.Args = []string{"cmd"}
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "", ConfigFile())
	})
}
