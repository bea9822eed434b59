// Package logger builds the structured loggers used across Ignite's
// packages. Every component receives a *zap.SugaredLogger tagged with the
// name of the service or component that owns it, so log lines can be
// filtered by origin without threading component names through every call.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured logger scoped to service.
//
// The encoder and level match zap's production defaults (JSON output,
// info level and above). Timestamps are switched to ISO8601, output goes to
// stderr, and a "service" field is attached to every entry, so multiple
// components logging to the same sink (engine, index, netsrv, ...) remain
// distinguishable.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		// Building the production config can only fail on a malformed sink
		// path, which is fixed at compile time above; fall back rather than
		// propagate a constructor error through every caller.
		log = zap.NewNop()
	}

	return log.Sugar().With("service", service)
}

// NewDevelopment builds a human-readable, debug-level logger, for use where
// a developer is watching the output directly instead of shipping it to a
// log aggregator.
func NewDevelopment(service string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}

	return log.Sugar().With("service", service)
}
