// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Run logger: console output plus a rotating JSON log file

package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the run logger
type Options struct {
	Level   string // debug, info, warn, error
	Dir     string // log directory, "" disables the file core
	Verbose bool   // forces console level to debug
}

// New creates a logger with a console core for humans and a rotating
// JSON file core for post-mortems. The returned closer flushes the
// file sink.
func New(opts Options) (*zap.Logger, func(), error) {
	consoleLevel := parseLevel(opts.Level)
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoderCfg := encoderCfg
	consoleEncoderCfg.TimeKey = "" // console lines stay short
	consoleEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderCfg),
			zapcore.Lock(os.Stderr),
			consoleLevel,
		),
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, nil, err
		}
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, "lamport.log"),
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			fileSink,
			zapcore.DebugLevel, // file gets everything
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closer := func() { _ = logger.Sync() }
	return logger, closer, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
