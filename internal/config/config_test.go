package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.False(t, cfg.Scorer)
	assert.True(t, cfg.Color)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: summary\nscorer: true\ncolor: false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FormatSummary, cfg.Format)
	assert.True(t, cfg.Scorer)
	assert.False(t, cfg.Color)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: csv\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestValidate(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatSummary, FormatTable} {
		cfg := Config{Format: format}
		assert.NoError(t, cfg.Validate())
	}

	bad := Config{Format: "xml"}
	assert.ErrorIs(t, bad.Validate(), ErrUnknownFormat)
}
