// Package config loads the tiletopo configuration file.
//
// The file is TOML and every section is optional:
//
//	[database]
//	root = "/path/to/db"
//	family = "LIFCL"
//	bels = "/path/to/bels.toml"
//
//	[cache]
//	backend = "file"   # none, file, redis or mongo
//	ttl = "168h"
//
//	[build]
//	workers = 8
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "tiletopo"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Defaults.
const (
	DefaultBackend   = BackendFile
	DefaultTTL       = 7 * 24 * time.Hour
	DefaultAddr      = ":8080"
	DefaultRedisAddr = "localhost:6379"
	DefaultMongoURI  = "mongodb://localhost:27017"
)

// Config is the complete configuration.
type Config struct {
	Database Database `toml:"database"`
	Cache    Cache    `toml:"cache"`
	Build    Build    `toml:"build"`
	Server   Server   `toml:"server"`
}

// Database locates the bit database.
type Database struct {
	Root   string `toml:"root"`
	Family string `toml:"family"`
	Bels   string `toml:"bels"`
}

// Cache selects the byte cache backend for raw database files.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	Prefix    string   `toml:"prefix"`
	RedisAddr string   `toml:"redis_addr"`
	MongoURI  string   `toml:"mongo_uri"`
}

// Build tunes registry construction.
type Build struct {
	Workers int `toml:"workers"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads the configuration at path and applies defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
		if err == nil {
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
			}
		}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultBackend
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultTTL
	}
	if c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}
	if c.Cache.MongoURI == "" {
		c.Cache.MongoURI = DefaultMongoURI
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be one of: none, file, redis, mongo)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Build.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "build workers must not be negative")
	}
	if c.Database.Family != "" {
		if err := errors.ValidateFamily(c.Database.Family); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/tiletopo/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/tiletopo/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
