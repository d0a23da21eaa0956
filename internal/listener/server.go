// Package listener implements the TCP accept loop, grounded on the
// teacher's rtmp server's Listen/Accept/handleConnection shape, generalized
// from a single fixed registry-backed protocol to this server's own
// connection state machine and shutdown semantics.
package listener

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"

	"rvideo/internal/conn"
	"rvideo/internal/registry"
	"rvideo/internal/rvconfig"
)

// Server accepts TCP connections and spawns one Session per accepted
// socket. Its lifetime is independent of any single connection: closing
// the server closes the listening socket and signals every in-flight
// session to wind down at its next suspension point.
type Server struct {
	ln   net.Listener
	reg  *registry.Registry
	cfg  *rvconfig.ServerConfig
	stop chan struct{}
	wg   sync.WaitGroup

	closeOnce sync.Once
	conns     atomic.Int64
}

// Listen opens the listening socket at cfg.BindAddr against reg, but does
// not yet accept connections; call Serve to run the accept loop.
func Listen(reg *registry.Registry, cfg *rvconfig.ServerConfig) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddr)
	if err != nil {
		return nil, fmt.Errorf("listener: listen %s: %w", cfg.BindAddr, err)
	}
	return &Server{
		ln:   ln,
		reg:  reg,
		cfg:  cfg,
		stop: make(chan struct{}),
	}, nil
}

// Addr returns the listener's bound address, useful when BindAddr requests
// an ephemeral port.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// ConnectionCount returns the number of currently active sessions.
func (s *Server) ConnectionCount() int {
	return int(s.conns.Load())
}

// Serve runs the accept loop until Close is called or the listener errors.
// Each accepted socket is served by its own Session in its own goroutine;
// Serve itself does no per-connection work and never touches frame data.
func (s *Server) Serve() error {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return nil // expected: Close tore down the listener
			default:
				return fmt.Errorf("listener: accept: %w", err)
			}
		}

		s.wg.Add(1)
		s.conns.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.conns.Add(-1)
			sess := conn.New(c, s.reg, s.cfg, s.stop)
			if err := sess.Serve(); err != nil {
				log.Printf("listener: session %s: %v", c.RemoteAddr(), err)
			}
		}()
	}
}

// Close closes the listening socket and signals every in-flight session to
// terminate at its next suspension point, then waits for them to exit.
// A session blocked in a socket read or write does not observe the signal,
// so Close waits until that call returns. Idempotent.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.ln.Close()
		s.wg.Wait()
	})
	return err
}
