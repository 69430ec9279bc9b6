package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// KeepComments controls whether comments are kept.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepComments = keep
	return b
}

// KeepGlyphs controls whether annotation symbols are kept.
func (b *ConfigBuilder) KeepGlyphs(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepGlyphs = keep
	return b
}

// KeepVariations controls whether variations are kept.
func (b *ConfigBuilder) KeepVariations(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepVariations = keep
	return b
}

// WithMaxDepth bounds variation nesting on import.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.Import.MaxDepth = depth
	return b
}

// WithStartFEN sets the start position for imports and new studies.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Import.StartFEN = fen
	return b
}

// WithWorkers sets the number of concurrent imports.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Import.Workers = n
	return b
}

// WithFailFast stops imports after the first failed file.
func (b *ConfigBuilder) WithFailFast(on bool) *ConfigBuilder {
	b.cfg.Import.FailFast = on
	return b
}

// WithServerAddr sets the HTTP listen address.
func (b *ConfigBuilder) WithServerAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithRedisStore selects the Redis snapshot store.
func (b *ConfigBuilder) WithRedisStore(addr string, db int, ttl time.Duration) *ConfigBuilder {
	b.cfg.Store.Backend = StoreRedis
	b.cfg.Store.RedisAddr = addr
	b.cfg.Store.RedisDB = db
	b.cfg.Store.TTL = ttl
	return b
}

// WithLogLevel sets the logger level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
