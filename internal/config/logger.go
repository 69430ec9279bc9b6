package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// LogConfig configures the zap logger built by the commands.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// Validate checks that the level is one zap knows.
func (l *LogConfig) Validate() error {
	_, err := l.level()
	return err
}

func (l *LogConfig) level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errors.Wrapf(errors.ErrInvalidConfig, "log level %q", l.Level)
	}
	return level, nil
}

// NewLogger builds a sugared logger at the configured level.
func (l *LogConfig) NewLogger() (*zap.SugaredLogger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
