package rvconfig

import "fmt"

// Validate checks that all configuration values are within acceptable
// ranges, returning an error describing the first failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}

// Validate checks ServerConfig values.
func (s *ServerConfig) Validate() error {
	if s.AckTimeout <= 0 {
		return fmt.Errorf("ack_timeout must be positive, got %s", s.AckTimeout)
	}
	if s.IdleTakeTimeout <= 0 {
		return fmt.Errorf("idle_take_timeout must be positive, got %s", s.IdleTakeTimeout)
	}
	if s.MaxClientsPerStream < 0 {
		return fmt.Errorf("max_clients_per_stream must not be negative, got %d", s.MaxClientsPerStream)
	}
	return nil
}
