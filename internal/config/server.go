package config

import (
	"time"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ServerConfig holds settings for the study HTTP service.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  10 * time.Second,
	}
}

// Validate checks the listen address and timeout.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "server address is empty")
	}
	if s.ShutdownTimeout < 0 || s.RequestTimeout < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "negative timeout")
	}
	return nil
}

// StoreConfig selects where study snapshots are kept.
type StoreConfig struct {
	Backend       string        `mapstructure:"backend"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backend:   StoreMemory,
		RedisAddr: "localhost:6379",
		KeyPrefix: "movetree:study:",
	}
}

// Validate checks the backend name and its settings.
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case StoreMemory:
	case StoreRedis:
		if s.RedisAddr == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "redis backend needs an address")
		}
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown store backend %q", s.Backend)
	}
	if s.TTL < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "store ttl %s", s.TTL)
	}
	return nil
}
