package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)

	assert.Equal(t, "stream", cfg.StreamName)
	assert.Equal(t, 10*time.Minute, cfg.Duration())
	assert.Equal(t, 30*time.Second, cfg.Interval())
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryBackoff())
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "llama3.2-vision:11b", cfg.Ollama.Model)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
stream_name: spring-launch
output_dir: /tmp/analysis
duration_minutes: 45
interval_seconds: 15
max_retries: 5
provider: openai
openai:
  api_key: sk-test
  model: gpt-4o-mini
`
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "spring-launch", cfg.StreamName)
	assert.Equal(t, 45*time.Minute, cfg.Duration())
	assert.Equal(t, 15*time.Second, cfg.Interval())
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)

	// Unset fields keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.RetryBackoff())
	assert.Equal(t, "http://localhost", cfg.Ollama.BaseURL)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestOpenAIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
}
