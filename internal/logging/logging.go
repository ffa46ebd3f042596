// Package logging builds the process-wide zap logger from LOG_LEVEL and LOG_FORMAT.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a production (json) or development (console) logger at the given level.
func New(level, format string) (*zap.Logger, error) {
	op := "logging.New"

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg zap.Config
	switch format {
	case FormatJSON, "":
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%s: unknown log format %q", op, format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return logger, nil
}
