package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EachDialectHasGooseUp(t *testing.T) {
	for _, dir := range []string{SQLiteDir, PostgresDir} {
		t.Run(dir, func(t *testing.T) {
			files, err := fs.Glob(Migrations, dir+"/*.sql")
			require.NoError(t, err)
			require.NotEmpty(t, files)

			for _, f := range files {
				b, err := fs.ReadFile(Migrations, f)
				require.NoError(t, err)
				assert.True(t, strings.Contains(string(b), "-- +goose Up"), f)
				assert.Contains(t, string(b), "metadata")
			}
		})
	}
}
