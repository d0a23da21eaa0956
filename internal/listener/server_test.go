package listener

import (
	"net"
	"testing"
	"time"

	"rvideo/internal/frame"
	"rvideo/internal/registry"
	"rvideo/internal/rvconfig"
)

func testConfig() *rvconfig.ServerConfig {
	return &rvconfig.ServerConfig{
		BindAddr:        "127.0.0.1:0",
		AckTimeout:      time.Second,
		IdleTakeTimeout: 50 * time.Millisecond,
	}
}

func TestListenAndAcceptFullHandshake(t *testing.T) {
	reg := registry.New()
	_, _, err := reg.Register(frame.Luma8, 1, 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	srv, err := Listen(reg, testConfig())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go srv.Serve()
	defer srv.Close()

	c, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	greetings := make([]byte, 3)
	if _, err := c.Read(greetings); err != nil {
		t.Fatalf("read greetings: %v", err)
	}
	if greetings[0] != 0x52 || greetings[1] != 1 {
		t.Errorf("greetings = % x, want num_streams=1", greetings)
	}
}

func TestConnectionCountTracksActiveSessions(t *testing.T) {
	reg := registry.New()
	reg.Register(frame.Luma8, 1, 1)

	srv, err := Listen(reg, testConfig())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go srv.Serve()
	defer srv.Close()

	c, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && srv.ConnectionCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if srv.ConnectionCount() != 1 {
		t.Errorf("ConnectionCount() = %d, want 1", srv.ConnectionCount())
	}
}

func TestCloseStopsAcceptLoop(t *testing.T) {
	reg := registry.New()
	srv, err := Listen(reg, testConfig())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after Close, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Close")
	}
}
