package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for config:
// - Missing config file yields defaults
// - Config file values override defaults
// - An explicit --config path that doesn't exist is an error

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "doctest.js", cfg.Output.File)
	assert.True(t, cfg.Output.MappingURL)
	assert.Contains(t, cfg.Paths.Markdown, "**/*.md")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
}

func TestLoad_FileOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfgYML := "output:\n  file: generated/tests.js\npaths:\n  markdown:\n    - \"docs/**/*.md\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".doctest.yml"), []byte(cfgYML), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "generated/tests.js", cfg.Output.File)
	assert.Equal(t, []string{"docs/**/*.md"}, cfg.Paths.Markdown)
	// Untouched sections keep their defaults.
	assert.NotEmpty(t, cfg.Paths.Source)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir(), "/nonexistent/.doctest.yml")
	require.Error(t, err)
}
