package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all run parameters
type Config struct {
	StreamName string `yaml:"stream_name"`
	OutputDir  string `yaml:"output_dir"`

	DurationMinutes int `yaml:"duration_minutes"`
	IntervalSeconds int `yaml:"interval_seconds"`

	MaxRetries          int `yaml:"max_retries"`
	RetryBackoffSeconds int `yaml:"retry_backoff_seconds"`

	Provider string       `yaml:"provider"` // "ollama" or "openai"
	Ollama   OllamaConfig `yaml:"ollama"`
	OpenAI   OpenAIConfig `yaml:"openai"`

	Capture CaptureConfig `yaml:"capture"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Port    int    `yaml:"port"`
	Model   string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type CaptureConfig struct {
	Display string `yaml:"display"`
}

// Load reads configuration from file or returns defaults. The OpenAI key
// falls back to the OPENAI_API_KEY environment variable so it never has to
// live in the file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file does not exist at path: '%s'", path)
			}
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %v", path, err)
		}
	}

	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		StreamName:          "stream",
		OutputDir:           "output",
		DurationMinutes:     10,
		IntervalSeconds:     30,
		MaxRetries:          3,
		RetryBackoffSeconds: 2,
		Provider:            "ollama",
		Ollama: OllamaConfig{
			BaseURL: "http://localhost",
			Port:    11434,
			Model:   "llama3.2-vision:11b",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Capture: CaptureConfig{
			Display: ":0.0",
		},
	}
}

func (c *Config) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSeconds) * time.Second
}
