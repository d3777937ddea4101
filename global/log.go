// Package global holds the process-wide state set during bootstrap.
package global

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger, set during bootstrap.
var Logger *zap.Logger

func Log() *zap.Logger {
	return Logger
}
