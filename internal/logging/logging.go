// Package logging constructs the structured logger used throughout the
// service. It wraps go.uber.org/zap, the structured-logging library the
// sharded-cache reference (Voskan-arena-cache, the pack's closest
// architectural analog to the symbol registry) builds on, in the same
// level/service-name shape the teacher's collaborator logging is described
// with: one named logger per process, constructed once in cmd/server's
// main and threaded down into the HTTP layer, never recreated per request.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction. LogPath, when non-empty, adds a
// file sink alongside stderr; LogLevel accepts zap's level names
// ("debug", "info", "warn", "error").
type Config struct {
	Service  string
	LogPath  string
	LogLevel string
}

// New builds a *zap.Logger per cfg. On an invalid level it falls back to
// info rather than failing service startup over a logging misconfiguration.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sinks := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(newStderrSink())), level),
	}

	if cfg.LogPath != "" {
		f, err := openLogFile(cfg.LogPath)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", cfg.LogPath, err)
		}
		sinks = append(sinks, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), level))
	}

	core := zapcore.NewTee(sinks...)
	logger := zap.New(core)
	if cfg.Service != "" {
		logger = logger.Named(cfg.Service)
	}
	return logger, nil
}
