package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points the user config directory at an empty temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("CB_FILE", "")
	t.Setenv("CB_COLOR", "")
	t.Setenv("CB_LOG_LEVEL", "")
	os.Unsetenv("CB_FILE")
	os.Unsetenv("CB_COLOR")
	os.Unsetenv("CB_LOG_LEVEL")
	return xdg
}

func TestLoadConfig(t *testing.T) {
	t.Run("no config file returns defaults", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, DefaultFile, cfg.File)
		assert.Equal(t, DefaultColor, cfg.Color)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Empty(t, cfg.Source)
	})

	t.Run("full .cbconfig.yaml loads all values", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()

		configContent := `file: people.yaml
color: never
log_level: debug
`
		configPath := filepath.Join(dir, ".cbconfig.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "people.yaml", cfg.File)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, configPath, cfg.Source)
	})

	t.Run("partial config merges with defaults", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbconfig.yaml"), []byte("color: always\n"), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "always", cfg.Color)
		assert.Equal(t, DefaultFile, cfg.File)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	})

	t.Run("user config dir is used when no local file", func(t *testing.T) {
		xdg := isolateConfig(t)
		dir := t.TempDir()

		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "cb"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(xdg, "cb", "config.yaml"), []byte("file: /tmp/book.json\n"), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/book.json", cfg.File)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbconfig.yaml"), []byte("file: a.json\n"), 0644))
		t.Setenv("CB_FILE", "b.json")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "b.json", cfg.File)
	})

	t.Run("invalid color returns error", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbconfig.yaml"), []byte("color: rainbow\n"), 0644))

		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid color")
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbconfig.yaml"), []byte("log_level: loud\n"), 0644))

		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log_level")
	})

	t.Run("malformed yaml returns error", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbconfig.yaml"), []byte("file: [unclosed\n"), 0644))

		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	paths := ConfigPaths("/work")
	assert.Equal(t, []string{"/work/.cbconfig.yaml", "/xdg/cb/config.yaml"}, paths)
}
