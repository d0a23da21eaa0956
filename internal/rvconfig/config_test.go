package rvconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rvideo.yaml")
	if err := os.WriteFile(path, []byte("server:\n  bind_addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BindAddr != ":9000" {
		t.Errorf("BindAddr = %q, want :9000", cfg.Server.BindAddr)
	}
	if cfg.Server.AckTimeout != 5*time.Second {
		t.Errorf("AckTimeout = %s, want default 5s", cfg.Server.AckTimeout)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rvideo.yaml")
	if err := os.WriteFile(path, []byte("server:\n  bogus_field: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error for unknown field")
	}
}

func TestValidateRejectsNonPositiveTimeouts(t *testing.T) {
	cfg := Default()
	cfg.Server.AckTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero AckTimeout")
	}
}
