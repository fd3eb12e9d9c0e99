// Package logging builds the zap logger used across moodpulse.
package logging

import (
	"fmt"
	"os"

	"github.com/ramanasai/moodpulse/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelFromString parses a level name; empty means warn so the CLI stays quiet.
func LevelFromString(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderCfg)
}

// New writes to stderr so command output on stdout stays scriptable.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := LevelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}
	switch cfg.Format {
	case "", "console", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stderr), level)
	return zap.New(core).Named("moodpulse"), nil
}

// NewNop discards everything.
func NewNop() *zap.Logger { return zap.NewNop() }
