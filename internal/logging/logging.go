// Package logging builds the process logger. The editor owns the terminal,
// so interactive sessions log to a file.
package logging

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"neonmap/internal/config"
)

// Sink selects where log output goes.
type Sink int

const (
	SinkFile Sink = iota
	SinkStderr
)

func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New builds a logger from the [log] section.
func New(cfg config.LogConfig, sink Sink) (*zap.Logger, error) {
	var zapConfig zap.Config
	if sink == SinkStderr {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.OutputPaths = []string{"stderr"}
	} else {
		if cfg.File == "" {
			return zap.NewNop(), nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		zapConfig = zap.NewProductionConfig()
		zapConfig.OutputPaths = []string{cfg.File}
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.ErrorOutputPaths = zapConfig.OutputPaths
	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
