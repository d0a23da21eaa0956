package rvideo

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"rvideo/internal/listener"
	"rvideo/internal/registry"
	"rvideo/internal/stats"
)

// ServerHandle represents a running listener. Dropping interest in it
// without calling Close leaks the listening socket and its connections;
// callers should always Close when done, typically via defer.
type ServerHandle struct {
	ln       *listener.Server
	statsSrv *http.Server
}

// Serve starts the TCP listener described by cfg against the process-wide
// stream registry and begins accepting connections in the background.
// Serve returns once the listener is bound, not once it stops; use
// ServerHandle.Close to shut down. An error from the background accept loop
// after binding is discarded; Close reports only the error from closing the
// listening socket.
//
// If cfg.Server.StatsAddr is non-empty, an additional HTTP listener is
// started there exposing /healthz and /api/streams.
func Serve(cfg *Config) (*ServerHandle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rvideo: invalid config: %w", err)
	}

	ln, err := listener.Listen(registry.Default(), &cfg.Server)
	if err != nil {
		return nil, err
	}

	h := &ServerHandle{ln: ln}
	go func() {
		if err := ln.Serve(); err != nil {
			// An accept failure ends the loop; the error is not reported.
		}
	}()

	if cfg.Server.StatsAddr != "" {
		statsLn, err := net.Listen("tcp", cfg.Server.StatsAddr)
		if err != nil {
			ln.Close()
			return nil, fmt.Errorf("rvideo: stats listener: %w", err)
		}
		mux := http.NewServeMux()
		stats.New(registry.Default()).RegisterRoutes(mux)
		h.statsSrv = &http.Server{Handler: mux}
		go h.statsSrv.Serve(statsLn)
	}

	return h, nil
}

// Addr returns the bound address of the main wire-protocol listener,
// useful when Config.Server.BindAddr requests an ephemeral port.
func (h *ServerHandle) Addr() net.Addr {
	return h.ln.Addr()
}

// ConnectionCount returns the number of currently active client sessions.
func (h *ServerHandle) ConnectionCount() int {
	return h.ln.ConnectionCount()
}

// Close shuts down the listener and every in-flight session, waiting for
// them to exit, then shuts down the stats listener if one was started.
func (h *ServerHandle) Close() error {
	err := h.ln.Close()
	if h.statsSrv != nil {
		h.statsSrv.Shutdown(context.Background())
	}
	return err
}
