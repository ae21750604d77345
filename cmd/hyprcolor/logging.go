package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the daemon logger. The returned level can be raised or
// lowered after the config is loaded.
func newLogger(debug bool) (*zap.Logger, zap.AtomicLevel, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Sampling = nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, cfg.Level, err
	}
	return logger, cfg.Level, nil
}

// applyLogLevel sets level from a general.log_level value. Unknown or empty
// values leave it unchanged.
func applyLogLevel(level zap.AtomicLevel, name string) {
	if name == "" {
		return
	}
	parsed, err := zapcore.ParseLevel(name)
	if err != nil {
		zap.S().Warnf("Ignoring log level %q: %v", name, err)
		return
	}
	level.SetLevel(parsed)
}
