// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. Secrets only ever come from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
	Research  ResearchConfig  `yaml:"research"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type GeneratorConfig struct {
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	BackoffMs      int    `yaml:"backoff_ms"`

	// From OPENAI_API_KEY only, never the file.
	APIKey string `yaml:"-"`
}

type ResearchConfig struct {
	// From YOUTUBE_API_KEY only. Empty disables competitor enrichment.
	YouTubeAPIKey string `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Generator: GeneratorConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 60,
			MaxRetries:     2,
			BackoffMs:      500,
		},
	}
}

// Load reads the YAML file at path (skipped if absent), then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Running on env vars alone is fine.
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.Generator.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
		cfg.Generator.BaseURL = v
	}
	if v, ok := envInt("GENERATOR_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.Generator.TimeoutSeconds = v
	}
	if v, ok := envInt("GENERATOR_MAX_RETRIES"); ok && v >= 0 {
		cfg.Generator.MaxRetries = v
	}
	if v, ok := envInt("GENERATOR_BACKOFF_MS"); ok && v > 0 {
		cfg.Generator.BackoffMs = v
	}
	cfg.Generator.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.Research.YouTubeAPIKey = strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
}

func envInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
