// Package logger builds the application zap logger and owns the shared
// log field names.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config mirrors the log section of the application configuration.
type Config struct {
	// Level is a zapcore level name, see zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File is the log file path; empty or "stderr" logs to stderr
	File string `yaml:"file" default:""`
	// Production enables JSON output
	Production bool `yaml:"production" default:"true"`
}

// NewLogger creates a zap logger from Config.
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	var encoder zapcore.Encoder
	if c.Production {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writer zapcore.WriteSyncer
	if c.File == "" || c.File == "stderr" {
		writer = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writer = zapcore.Lock(f)
	}

	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller()), nil
}
