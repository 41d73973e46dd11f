package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"forensic/internal/core/errors"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Analyzer.Language) == "" {
		cfg.Analyzer.Language = "python"
	}
	if cfg.Analyzer.MaxSourceBytes <= 0 {
		cfg.Analyzer.MaxSourceBytes = 2 << 20
	}

	if strings.TrimSpace(cfg.Judge.Model) == "" {
		cfg.Judge.Model = "gemini-2.5-flash"
	}
	if strings.TrimSpace(cfg.Judge.BaseURL) == "" {
		cfg.Judge.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if strings.TrimSpace(cfg.Judge.APIKeyEnv) == "" {
		cfg.Judge.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Judge.Timeout <= 0 {
		cfg.Judge.Timeout = 60 * time.Second
	}
	if cfg.Judge.RequestsPerMinute <= 0 {
		cfg.Judge.RequestsPerMinute = 10
	}
	if cfg.Judge.Burst <= 0 {
		cfg.Judge.Burst = 2
	}

	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "node_modules", "__pycache__"}
	}

	if strings.TrimSpace(cfg.Observability.Address) == "" {
		cfg.Observability.Address = "127.0.0.1:9190"
	}
}

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return errors.New(errors.CodeValidationError, fmt.Sprintf("unsupported config version: %d", cfg.Version))
	}
	if cfg.Judge.RequestsPerMinute < 0 {
		return errors.New(errors.CodeValidationError, "judge.requests_per_minute must be positive")
	}
	for tag, spec := range cfg.Languages {
		for _, ext := range spec.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return errors.New(errors.CodeValidationError,
					fmt.Sprintf("languages.%s: extension %q must start with a dot", tag, ext))
			}
		}
	}
	return nil
}
