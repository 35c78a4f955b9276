package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the logging level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// New builds a logger with the specified configuration. Unknown levels
// fall back to info.
func New(development bool, level Level) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	switch Level(strings.ToLower(string(level))) {
	case DebugLevel:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case WarnLevel:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case ErrorLevel:
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	// CLI output owns stdout.
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}
