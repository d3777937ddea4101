package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quartermaster-app/linkgraph/internal/app"
)

// bootstrapLogger records startup progress before the main logger exists.
var bootstrapLogger *zap.Logger

func init() {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleWriter := zapcore.Lock(os.Stderr)

	level := zapcore.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	bootstrapLogger = zap.New(core, zap.AddCaller())
}

// newApp loads config and builds the application container. Failures are
// fatal; there is nothing useful to do without a store.
func newApp() *app.App {
	config, realpath, err := app.LoadConfig(configFile)
	if err != nil {
		bootstrapLogger.Fatal("load config failed", zap.Error(err))
	}
	bootstrapLogger.Info("config loaded", zap.String("file", realpath))

	a, err := app.New(config)
	if err != nil {
		bootstrapLogger.Fatal("app init failed", zap.Error(err))
	}
	return a
}
