package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: DTSFORGE_[SECTION]_[KEY].
func ApplyEnvOverrides(cfg *Config) {
	setEnvBool(&cfg.DB.Enabled, "DTSFORGE_DB_ENABLED")
	setEnvString(&cfg.DB.Path, "DTSFORGE_DB_PATH")
	setEnvDuration(&cfg.DB.BusyTimeout, "DTSFORGE_DB_BUSY_TIMEOUT")

	setEnvDuration(&cfg.Watch.Debounce, "DTSFORGE_WATCH_DEBOUNCE")

	setEnvString(&cfg.Output.Dir, "DTSFORGE_OUTPUT_DIR")

	setEnvBool(&cfg.Tracing.Enabled, "DTSFORGE_TRACING_ENABLED")
	setEnvString(&cfg.Tracing.Endpoint, "DTSFORGE_TRACING_ENDPOINT")
	setEnvBool(&cfg.Metrics.Enabled, "DTSFORGE_METRICS_ENABLED")
	setEnvString(&cfg.Metrics.Address, "DTSFORGE_METRICS_ADDRESS")
}

func setEnvString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setEnvBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean env override", "key", key, "value", v)
		return
	}
	*dst = b
}

func setEnvDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration env override", "key", key, "value", v)
		return
	}
	*dst = d
}
