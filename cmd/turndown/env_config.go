package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-turndown/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TURNDOWN_CONFIG: config file name or path
	Workers    int           // TURNDOWN_WORKERS: parallel workers
	Timeout    time.Duration // TURNDOWN_TIMEOUT: page load timeout
	OutputDir  string        // TURNDOWN_OUTPUT_DIR: default output directory
	Plugins    []string      // TURNDOWN_PLUGINS: comma-separated plugin names
	UserAgent  string        // TURNDOWN_USER_AGENT: User-Agent for downloads
}

// knownEnvVars lists valid TURNDOWN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TURNDOWN_CONFIG":     true,
	"TURNDOWN_WORKERS":    true,
	"TURNDOWN_TIMEOUT":    true,
	"TURNDOWN_OUTPUT_DIR": true,
	"TURNDOWN_PLUGINS":    true,
	"TURNDOWN_USER_AGENT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TURNDOWN_CONFIG"),
		OutputDir:  os.Getenv("TURNDOWN_OUTPUT_DIR"),
		UserAgent:  os.Getenv("TURNDOWN_USER_AGENT"),
	}

	if timeout := os.Getenv("TURNDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TURNDOWN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	for _, p := range strings.Split(os.Getenv("TURNDOWN_PLUGINS"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Plugins = append(cfg.Plugins, p)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TURNDOWN_* variables.
// Helps catch typos like TURNDOWN_WORKER instead of TURNDOWN_WORKERS.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TURNDOWN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty,
// so a config file wins over the environment. CLI flags are applied later
// via mergeFlags and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if len(env.Plugins) > 0 && len(cfg.Plugins) == 0 {
		cfg.Plugins = append([]string(nil), env.Plugins...)
	}
	if env.UserAgent != "" && cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = env.UserAgent
	}
	if env.Timeout > 0 && cfg.Fetch.Timeout == "" {
		cfg.Fetch.Timeout = env.Timeout.String()
	}
}
