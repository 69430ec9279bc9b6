package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// EnvPrefix prefixes environment overrides: MOVETREE_STORE_BACKEND=redis.
const EnvPrefix = "MOVETREE"

// Load builds a Config from defaults, then the file at path (if any), then
// MOVETREE_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "reading %s: %v", path, err)
		}
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "decoding: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment variables can reach it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("verbosity", d.Verbosity)

	v.SetDefault("output.max_line_length", d.Output.MaxLineLength)
	v.SetDefault("output.keep_comments", d.Output.KeepComments)
	v.SetDefault("output.keep_glyphs", d.Output.KeepGlyphs)
	v.SetDefault("output.keep_variations", d.Output.KeepVariations)
	v.SetDefault("output.json", d.Output.JSONFormat)

	v.SetDefault("import.max_depth", d.Import.MaxDepth)
	v.SetDefault("import.start_fen", d.Import.StartFEN)
	v.SetDefault("import.workers", d.Import.Workers)
	v.SetDefault("import.fail_fast", d.Import.FailFast)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)

	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.redis_addr", d.Store.RedisAddr)
	v.SetDefault("store.redis_password", d.Store.RedisPassword)
	v.SetDefault("store.redis_db", d.Store.RedisDB)
	v.SetDefault("store.key_prefix", d.Store.KeyPrefix)
	v.SetDefault("store.ttl", d.Store.TTL)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}
