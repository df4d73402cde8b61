package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kararlabs/meetmind/internal/provider"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Meetings.Path)
	assert.NotEmpty(t, cfg.Ledger.Path)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
providers:
  gemini:
    model: gemini-2.0-flash
    timeout: 30
  openai:
    base_url: http://localhost:8080
ledger:
  path: /tmp/meetmind-test/tasks.json
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/meetmind-test/tasks.json", cfg.Ledger.Path)

	pcs := cfg.ProviderConfigs()
	assert.Equal(t, "gemini-2.0-flash", pcs[provider.KindGemini].Model)
	assert.Equal(t, 30, pcs[provider.KindGemini].Timeout)
	assert.Equal(t, "http://localhost:8080", pcs[provider.KindOpenAI].BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0600))

	t.Setenv("MEETMIND_LOGGING_LEVEL", "warn")
	t.Setenv("MEETMIND_LEDGER_PATH", "/tmp/meetmind-env/tasks.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/meetmind-env/tasks.json", cfg.Ledger.Path)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  grok:\n    model: x\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	big := make([]byte, maxConfigFileSize+1)
	require.NoError(t, os.WriteFile(path, big, 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
