package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
)

// DefaultDotenv is read by LoadConfig when no files are named.
const DefaultDotenv = ".env"

// InitLogger builds the process-wide JSON logger and installs it as the slog
// default. Development mode logs at debug level.
func InitLogger(w io.Writer, isDev bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if isDev {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig reads the dotenv files (missing ones are skipped), then parses
// the environment into an AppConfig and clamps it. Variables already set in
// the environment win over dotenv values.
func LoadConfig(dotenvFiles ...string) (config.AppConfig, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{DefaultDotenv}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.AppConfig{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[config.AppConfig]()
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}
