package rvideo

import "rvideo/internal/rvconfig"

// Config holds server configuration: bind address, optional per-stream
// client cap, ACK timeout, idle take timeout, and the optional
// introspection listener address.
type Config = rvconfig.Config

// LoadConfig reads and strictly decodes a YAML configuration file at path,
// rejecting unknown fields, and applies defaults to anything left unset.
// Call cfg.Validate() before Serve if the file is untrusted input.
func LoadConfig(path string) (*Config, error) {
	return rvconfig.Load(path)
}

// DefaultConfig returns a Config populated entirely with defaults, for
// callers that embed rvideo without a config file.
func DefaultConfig() *Config {
	return rvconfig.Default()
}
