package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a no-op logger unless verbose is set. One -v logs at
// info level, two or more at debug level.
func newLogger(w io.Writer, verbose int, jsonOutput bool) *zap.SugaredLogger {
	if verbose == 0 {
		return zap.NewNop().Sugar()
	}
	level := zapcore.InfoLevel
	if verbose > 1 {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Named("ibgrep").Sugar()
}
