package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceslang/go-ces/validation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "ces.yaml", `
root: Pipeline
policy: strict
database: out/ces.db
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Pipeline", cfg.Root)
	assert.Equal(t, "out/ces.db", cfg.Database)

	policy, err := cfg.CoherencePolicy()
	require.NoError(t, err)
	assert.Equal(t, validation.Strict, policy)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "ces.json", `{"policy": "permissive", "log_level": "warn"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Main", cfg.Root)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad policy", `policy: lenient`},
		{"bad level", `log_level: loud`},
		{"bad yaml", `policy: [`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "ces.yaml", tc.content))
			assert.Error(t, err)
		})
	}
}
