package config

import (
	"fmt"

	"github.com/lgbarn/movetree-go/internal/engine"
	"github.com/lgbarn/movetree-go/internal/errors"
)

// ImportConfig holds settings for reading movetext into trees.
type ImportConfig struct {
	// MaxDepth bounds variation nesting; 0 means unbounded
	MaxDepth int `mapstructure:"max_depth"`

	// StartFEN replaces the standard initial position
	StartFEN string `mapstructure:"start_fen"`

	// Workers is the number of files imported concurrently; 0 uses GOMAXPROCS
	Workers int `mapstructure:"workers"`

	// FailFast stops importing after the first file that fails
	FailFast bool `mapstructure:"fail_fast"`
}

// NewImportConfig creates an ImportConfig with default values.
func NewImportConfig() *ImportConfig {
	return &ImportConfig{
		MaxDepth: 64,
	}
}

// Validate checks depth, worker count and the start position.
func (c *ImportConfig) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth %d: %w", c.MaxDepth, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.StartFEN != "" {
		if _, err := engine.NewBoardFromFEN(c.StartFEN); err != nil {
			return fmt.Errorf("start position: %w: %w", errors.ErrInvalidConfig, err)
		}
	}
	return nil
}
