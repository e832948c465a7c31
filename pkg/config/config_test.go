package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "UNIVERSAL", cfg.Analysis.UniversalRootName)
	assert.False(t, cfg.Analysis.UniversalRoot)
	assert.Equal(t, 0, cfg.Batch.Workers)
	assert.Equal(t, int64(5*1024*1024), cfg.Python.MaxFileSize)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heir.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[analysis]
ignore = "^Test::"
universal_root = true

[batch]
workers = 8

[output]
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "^Test::", cfg.Analysis.Ignore)
	assert.True(t, cfg.Analysis.UniversalRoot)
	assert.Equal(t, "UNIVERSAL", cfg.Analysis.UniversalRootName, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
python:
  max_file_size: 1024
  include_private: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.Python.MaxFileSize)
	assert.True(t, cfg.Python.IncludePrivate)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	// No config file present: defaults.
	assert.Equal(t, DefaultConfig(), LoadOrDefault())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "heir.toml"), []byte(`
[analysis]
ignore = "^Vendor::"
`), 0o644))
	assert.Equal(t, "^Vendor::", LoadOrDefault().Analysis.Ignore)
}
