package batch

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger from the logging configuration.
// Empty style and level fall back to terminal output at info level.
func NewLogger(c LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		parsed, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		level = parsed
	}

	switch c.Style {
	case "noop":
		return zap.NewNop(), nil
	case "json":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
		if err != nil {
			return nil, fmt.Errorf("building json logger: %w", err)
		}
		return logger, nil
	case "", "terminal":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
		if err != nil {
			return nil, fmt.Errorf("building terminal logger: %w", err)
		}
		return logger, nil
	default:
		return nil, fmt.Errorf("invalid logging style %q: must be terminal, json, or noop", c.Style)
	}
}
