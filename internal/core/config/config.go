package config

import (
	"time"
)

type Config struct {
	Version       int                 `toml:"version"`
	Analyzer      Analyzer            `toml:"analyzer"`
	Judge         Judge               `toml:"judge"`
	Languages     map[string]Language `toml:"languages"`
	WatchPaths    []string            `toml:"watch_paths"`
	Exclude       Exclude             `toml:"exclude"`
	Watch         Watch               `toml:"watch"`
	Output        Output              `toml:"output"`
	Observability Observability       `toml:"observability"`
}

// Analyzer configures the structural heuristic.
type Analyzer struct {
	// Language is the fallback tag used when a file's extension is not
	// mapped to any registered grammar. Empty means "skip structural
	// analysis for unrecognized files".
	Language string `toml:"language"`
	// MaxSourceBytes bounds traversal cost for adversarial inputs.
	MaxSourceBytes int64 `toml:"max_source_bytes"`
}

// Judge configures the remote judgment collaborator. The API key itself is
// never stored in the file; only the name of the environment variable that
// holds it.
type Judge struct {
	Enabled           bool          `toml:"enabled"`
	Model             string        `toml:"model"`
	BaseURL           string        `toml:"base_url"`
	APIKeyEnv         string        `toml:"api_key_env"`
	Timeout           time.Duration `toml:"timeout"`
	RequestsPerMinute float64       `toml:"requests_per_minute"`
	Burst             int           `toml:"burst"`
}

type Language struct {
	Enabled    *bool    `toml:"enabled"`
	Extensions []string `toml:"extensions"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Markdown string `toml:"markdown"`
	JSON     string `toml:"json"`
}

type Observability struct {
	Enabled       bool   `toml:"enabled"`
	Address       string `toml:"address"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	EnableTracing bool   `toml:"enable_tracing"`
}

// LanguageEnabled reports whether a language tag is enabled. Tags without an
// explicit [languages.<tag>] block default to enabled.
func (c *Config) LanguageEnabled(tag string) bool {
	spec, ok := c.Languages[tag]
	if !ok || spec.Enabled == nil {
		return true
	}
	return *spec.Enabled
}
