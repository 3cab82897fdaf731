// Package logger builds the zap loggers shared by the server and the CLIs.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger tagged with the component name.
// Debug mode keeps JSON output but lowers the level to debug.
func New(component string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"component": component}
	return cfg.Build()
}

// Must is New for command line tools, which have nothing useful to do
// without a logger.
func Must(component string, debug bool) *zap.Logger {
	l, err := New(component, debug)
	if err != nil {
		panic(err)
	}
	return l
}
