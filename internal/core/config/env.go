package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: FORENSIC_[SECTION]_[KEY].
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Analyzer.Language, "FORENSIC_ANALYZER_LANGUAGE")
	setEnvInt64(&cfg.Analyzer.MaxSourceBytes, "FORENSIC_ANALYZER_MAX_SOURCE_BYTES")

	setEnvBool(&cfg.Judge.Enabled, "FORENSIC_JUDGE_ENABLED")
	setEnvString(&cfg.Judge.Model, "FORENSIC_JUDGE_MODEL")
	setEnvString(&cfg.Judge.BaseURL, "FORENSIC_JUDGE_BASE_URL")
	setEnvString(&cfg.Judge.APIKeyEnv, "FORENSIC_JUDGE_API_KEY_ENV")
	setEnvDuration(&cfg.Judge.Timeout, "FORENSIC_JUDGE_TIMEOUT")

	setEnvDuration(&cfg.Watch.Debounce, "FORENSIC_WATCH_DEBOUNCE")

	setEnvBool(&cfg.Observability.Enabled, "FORENSIC_OBSERVABILITY_ENABLED")
	setEnvString(&cfg.Observability.Address, "FORENSIC_OBSERVABILITY_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "FORENSIC_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.EnableTracing, "FORENSIC_OBSERVABILITY_ENABLE_TRACING")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key)
		*target = val
	}
}

func setEnvInt64(target *int64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			slog.Debug("applying env override", "key", key)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			slog.Debug("applying env override", "key", key)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key)
			*target = d
		}
	}
}
