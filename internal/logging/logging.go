// Package logging holds the process-wide structured logger.
//
// Logs go to stderr: stdout carries the MCP protocol when serving.
package logging

import (
	"go.uber.org/zap"
)

// Logger is a no-op until InitLogger is called.
var Logger = zap.NewNop().Sugar()

// InitLogger builds Logger. Debug enables the development config at debug
// level; otherwise only warnings and errors are written.
func InitLogger(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
