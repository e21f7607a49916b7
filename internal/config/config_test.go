package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/internal/config"
)

func TestLoad_MissingPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.PromptColor)
	assert.Equal(t, "~/.larch_history", cfg.HistoryFile)
	assert.Equal(t, 255, cfg.MaxCallArgs)
}

func TestLoad_NonExistentFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 255, cfg.MaxCallArgs)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "larchrc.yaml")
	writeFile(t, path, "prompt_color: false\nmax_call_args: 10\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.PromptColor)
	assert.Equal(t, 10, cfg.MaxCallArgs)
	// history_file wasn't in the file, so the default survives the merge
	assert.Equal(t, "~/.larch_history", cfg.HistoryFile)
}

func TestLoad_EnvOverridesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "larchrc.yaml")
	writeFile(t, path, "max_call_args: 10\n")

	t.Setenv("LARCH_MAX_CALL_ARGS", "42")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxCallArgs, "an explicit env var always wins over the YAML file")
}

func TestLoad_InvalidYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "larchrc.yaml")
	writeFile(t, path, "max_call_args: [this is not an int\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
