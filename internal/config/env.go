package config

import (
	"os"

	"github.com/joho/godotenv"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

// Environment variables overriding values from the configuration file.
const (
	EnvTargetPrefix = "EXPORTREADME_TARGET_PREFIX"
	EnvLogLevel     = "EXPORTREADME_LOG_LEVEL"
	EnvLogFormat    = "EXPORTREADME_LOG_FORMAT"
)

// envFiles are loaded in order; variables already present in the process are kept.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every existing .env file. Missing files are skipped; a file that
// cannot be parsed is a config error.
func loadEnvFiles() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to load env file").
				Fatal().
				AtPath(path).
				Build()
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv(EnvTargetPrefix); ok && v != "" {
		cfg.TargetPrefix = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Logging.Format = LogFormat(v)
	}
}
