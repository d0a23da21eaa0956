// Package rvconfig defines RVideo's server configuration, using the same
// strict YAML decoding and explicit-defaults pattern as the original
// config package.
package rvconfig

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig defines the listener and per-connection behavior.
type ServerConfig struct {
	BindAddr            string        `yaml:"bind_addr"`
	AckTimeout          time.Duration `yaml:"ack_timeout"`
	IdleTakeTimeout     time.Duration `yaml:"idle_take_timeout"`
	MaxClientsPerStream int           `yaml:"max_clients_per_stream,omitempty"` // 0 = unbounded
	StatsAddr           string        `yaml:"stats_addr,omitempty"`             // empty disables introspection
}

// Load reads configuration from a YAML file, rejecting unknown fields, and
// applies defaults to anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// Default returns a Config populated entirely with defaults, for callers
// that embed RVideo without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Server.BindAddr == "" {
		c.Server.BindAddr = ":0"
	}
	if c.Server.AckTimeout == 0 {
		c.Server.AckTimeout = 5 * time.Second
	}
	if c.Server.IdleTakeTimeout == 0 {
		c.Server.IdleTakeTimeout = 5 * time.Second
	}
}
