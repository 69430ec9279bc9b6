// Package config provides configuration for the movetext tools and the
// study service.
package config

import (
	"io"
	"os"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Config holds all program configuration. Sections map onto viper keys
// ("output.max_line_length", "store.redis_addr", ...).
type Config struct {
	Verbosity int `mapstructure:"verbosity"` // 0=nothing, 1=file count, 2=running commentary

	Output *OutputConfig `mapstructure:"output"`
	Import *ImportConfig `mapstructure:"import"`
	Server *ServerConfig `mapstructure:"server"`
	Store  *StoreConfig  `mapstructure:"store"`
	Log    *LogConfig    `mapstructure:"log"`

	// Output streams
	OutputFile io.Writer `mapstructure:"-"`
	LogFile    io.Writer `mapstructure:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Import:     NewImportConfig(),
		Server:     NewServerConfig(),
		Store:      NewStoreConfig(),
		Log:        NewLogConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer linearized text goes to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d", c.Verbosity)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Import.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}
