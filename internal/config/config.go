package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type PipelineConfig struct {
	MaxArticles         int `toml:"max_articles"`
	PacingSeconds       int `toml:"pacing_seconds"`
	RetryBackoffSeconds int `toml:"retry_backoff_seconds"`
}

// Pacing is the fixed delay between summarization calls.
func (p PipelineConfig) Pacing() time.Duration {
	return time.Duration(p.PacingSeconds) * time.Second
}

// RetryBackoff is the wait before the single quota-error retry.
func (p PipelineConfig) RetryBackoff() time.Duration {
	return time.Duration(p.RetryBackoffSeconds) * time.Second
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type FeedsConfig struct {
	URLs []string `toml:"urls"`
}

type SummaryConfig struct {
	Prompt string `toml:"prompt"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Mongo    MongoConfig    `toml:"mongo"`
	Feeds    FeedsConfig    `toml:"feeds"`
	Summary  SummaryConfig  `toml:"summary"`
}

// Default sizes a run for a free-tier quota: 50 articles per run, 6s
// between calls (10 requests/minute), 60s quota backoff.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
		},
		Pipeline: PipelineConfig{
			MaxArticles:         50,
			PacingSeconds:       6,
			RetryBackoffSeconds: 60,
		},
		Mongo: MongoConfig{
			Database: "news_database",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
