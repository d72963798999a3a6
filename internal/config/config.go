package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreLoam   = "loam"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOMATA_"

// Config is the runtime configuration shared by the CLI, the HTTP server
// and the MCP server.
type Config struct {
	Listen         string      `yaml:"listen" json:"listen"`
	LogLevel       string      `yaml:"log_level" json:"log_level"`
	LogFormat      string      `yaml:"log_format" json:"log_format"`
	StrictAlphabet bool        `yaml:"strict_alphabet" json:"strict_alphabet"`
	Store          StoreConfig `yaml:"store" json:"store"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Kind string `yaml:"kind" json:"kind"`

	// Dir is the document directory for the file and loam stores.
	Dir string `yaml:"dir" json:"dir"`
	// Format is the write format of the file store: json or yaml.
	Format string `yaml:"format" json:"format"`

	Redis RedisConfig `yaml:"redis" json:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Kind:   StoreMemory,
			Dir:    ".automata/documents",
			Format: "json",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "automata:",
			},
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error. JSON files parse too, being valid YAML.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from AUTOMATA_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("LISTEN", &c.Listen)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("STORE", &c.Store.Kind)
	str("STORE_DIR", &c.Store.Dir)
	str("STORE_FORMAT", &c.Store.Format)
	str("REDIS_ADDR", &c.Store.Redis.Addr)
	str("REDIS_PASSWORD", &c.Store.Redis.Password)
	str("REDIS_PREFIX", &c.Store.Redis.Prefix)

	if v, ok := lookup(EnvPrefix + "STRICT_ALPHABET"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTRICT_ALPHABET: %w", EnvPrefix, err)
		}
		c.StrictAlphabet = b
	}
	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Store.Redis.DB = n
	}
	if v, ok := lookup(EnvPrefix + "REDIS_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_TTL: %w", EnvPrefix, err)
		}
		c.Store.Redis.TTL = d
	}
	return nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Kind) {
	case StoreMemory, StoreFile, StoreRedis, StoreLoam:
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	switch strings.ToLower(c.Store.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown store format %q", c.Store.Format)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("redis ttl must not be negative")
	}
	return nil
}
