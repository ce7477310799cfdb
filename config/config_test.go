package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "youtube", cfg.Captions.Provider)
	assert.Equal(t, "en", cfg.Captions.Language)
	assert.Equal(t, 3, cfg.Captions.MaxTries)
	assert.Equal(t, time.Second, cfg.Captions.InitialBackoff.Std())
	assert.Equal(t, 10*time.Second, cfg.Captions.MaxBackoff.Std())
	assert.Equal(t, "fullstop", cfg.Punct.Provider)
	assert.Equal(t, "HF_API_TOKEN", cfg.Punct.APIKeyEnv)
	assert.Equal(t, 30*time.Minute, cfg.Storage.Retention.Std())
	assert.Equal(t, 5*time.Minute, cfg.Storage.SweepInterval.Std())
}

func TestLoad_FileLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
captions:
  language: de
  max_tries: 5
  initial_backoff: 500ms
punct:
  provider: openai
  model: gpt-4o
  api_key_env: OPENAI_API_KEY
storage:
  retention: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "de", cfg.Captions.Language)
	assert.Equal(t, 5, cfg.Captions.MaxTries)
	assert.Equal(t, 500*time.Millisecond, cfg.Captions.InitialBackoff.Std())
	assert.Equal(t, "openai", cfg.Punct.Provider)
	assert.Equal(t, "gpt-4o", cfg.Punct.Model)
	assert.Equal(t, time.Hour, cfg.Storage.Retention.Std())

	// Untouched fields keep their defaults.
	assert.Equal(t, "youtube", cfg.Captions.Provider)
	assert.Equal(t, 10*time.Second, cfg.Captions.MaxBackoff.Std())
	assert.Equal(t, 5*time.Minute, cfg.Storage.SweepInterval.Std())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "listen: [unclosed"},
		{name: "invalid duration", content: "storage:\n  retention: soon"},
		{name: "empty listen", content: `listen: ""`},
		{name: "zero max_tries", content: "captions:\n  max_tries: 0"},
		{name: "empty provider", content: `captions: {provider: ""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Punct.APIKeyEnv = "TRANSCRIPT_TEST_KEY"

	t.Setenv("TRANSCRIPT_TEST_KEY", "secret")
	assert.Equal(t, "secret", cfg.APIKey())

	cfg.Punct.APIKeyEnv = ""
	assert.Equal(t, "", cfg.APIKey())
}
