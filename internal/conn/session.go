// Package conn implements the per-client connection state machine: the
// handshake, stream selection, paced frame dispatch, ACK gating, and
// teardown sequence that drives one TCP socket from accept to close. The
// accept-loop shape and stop-channel cancellation idiom follow the
// teacher's rtmp server session and relay task; the pacing loop follows its
// httpflv subscriber, adapted here for single-slot blocking takes instead
// of ring-buffer polling.
package conn

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"rvideo/internal/frame"
	"rvideo/internal/registry"
	"rvideo/internal/rvconfig"
	"rvideo/internal/slot"
	"rvideo/internal/wire"
)

// Sentinel errors returned by Serve. The root package's error taxonomy
// (errors.go) aliases these directly, the same way it aliases
// registry.ErrTooManyStreams and wire.ErrInvalidFps, so a caller's
// errors.Is check against the public sentinel matches what Serve actually
// returns.
var (
	// ErrProtocolViolation is returned when the client sends something the
	// wire protocol does not allow: a malformed ACK or an unexpected EOF
	// mid-frame.
	ErrProtocolViolation = errors.New("conn: protocol violation")

	// ErrStreamNotFound is returned when the client's STREAM-SELECT names
	// an id with no registered stream.
	ErrStreamNotFound = errors.New("conn: unknown stream id")

	// ErrIO wraps an underlying socket error encountered while writing or
	// reading a protocol message.
	ErrIO = errors.New("conn: io error")

	// ErrTimeout is returned when the client's ACK does not arrive within
	// the configured deadline.
	ErrTimeout = errors.New("conn: ack timeout")

	// ErrStreamGone is returned when the session's stream is deregistered
	// while the session is attached to it. It aliases registry.ErrStreamGone
	// directly rather than redeclaring it, so both packages report the same
	// identity.
	ErrStreamGone = registry.ErrStreamGone

	// errStopped is an internal-only signal meaning the listener's stop
	// channel fired; it is never wrapped or returned from Serve, which
	// treats it as an ordinary, unlogged shutdown rather than a failure.
	errStopped = errors.New("conn: session stopped")
)

// ProtocolViolationError carries the underlying cause of a protocol
// violation, for callers that want more than a sentinel match. The root
// package re-exports this as rvideo.ProtocolViolationError via a type
// alias.
type ProtocolViolationError struct {
	Cause error
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("conn: protocol violation: %v", e.Cause)
}

func (e *ProtocolViolationError) Unwrap() error {
	return ErrProtocolViolation
}

// TimeoutError reports which deadline a connection missed. The root
// package re-exports this as rvideo.TimeoutError via a type alias.
type TimeoutError struct {
	// Op names the operation that timed out, e.g. "ack".
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("conn: %s timeout", e.Op)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// Session drives one client connection through the wire protocol state
// machine. It is created per accepted socket and run to completion by
// Serve; it never outlives the connection.
type Session struct {
	conn net.Conn
	reg  *registry.Registry
	cfg  *rvconfig.ServerConfig
	stop <-chan struct{}
}

// New returns a Session bound to conn. stop is checked before each frame
// loop iteration, during the pacing sleep, and before each slot take, so
// Serve returns promptly from those points when the owning listener shuts
// down. Socket reads and writes do not observe stop: the ACK read ends
// within AckTimeout, while the STREAM-SELECT read and the frame writes block
// until the client acts or the socket fails.
func New(c net.Conn, reg *registry.Registry, cfg *rvconfig.ServerConfig, stop <-chan struct{}) *Session {
	return &Session{conn: c, reg: reg, cfg: cfg, stop: stop}
}

// Serve runs the session to completion: GREETINGS, STREAM-SELECT,
// validation, STREAM-INFO, then the frame/ACK loop until the client
// disconnects, sends a bad ACK, or the stream is deregistered. The
// underlying socket is always closed on return.
func (s *Session) Serve() error {
	defer s.conn.Close()

	if err := wire.WriteGreetings(s.conn, s.reg.Count()); err != nil {
		return fmt.Errorf("%w: write greetings: %w", ErrIO, err)
	}

	streamID, fps, err := wire.ReadStreamSelect(s.conn)
	if err != nil {
		if errors.Is(err, wire.ErrInvalidFps) {
			return fmt.Errorf("conn: read stream select: %w", err)
		}
		return fmt.Errorf("%w: read stream select: %w", ErrIO, err)
	}

	st, ok := s.reg.Lookup(streamID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrStreamNotFound, streamID)
	}

	if cap := s.cfg.MaxClientsPerStream; cap > 0 && st.SubscriberCount() >= cap {
		return &ProtocolViolationError{Cause: fmt.Errorf("stream %d already has %d clients", streamID, cap)}
	}

	if err := wire.WriteStreamInfo(s.conn, st.Info()); err != nil {
		return fmt.Errorf("%w: write stream info: %w", ErrIO, err)
	}

	sl, token := st.Subscribe()
	defer func() {
		st.Unsubscribe(token)
		sl.Close()
	}()

	interval := time.Second / time.Duration(fps)
	var lastSent time.Time

	for {
		select {
		case <-s.stop:
			return nil
		default:
		}

		if !lastSent.IsZero() {
			if wait := interval - time.Since(lastSent); wait > 0 {
				select {
				case <-time.After(wait):
				case <-s.stop:
					return nil
				}
			}
		}

		f, err := s.takeFrame(st, sl)
		if err != nil {
			if errors.Is(err, errStopped) {
				return nil // ordinary shutdown, not a failure
			}
			return err // ErrStreamGone: the stream was deregistered mid-session
		}
		if f == nil {
			continue // idle timeout; not fatal, loop back and wait again
		}

		if err := wire.WriteBlock(s.conn, f.Metadata); err != nil {
			return fmt.Errorf("%w: write metadata block: %w", ErrIO, err)
		}
		if err := wire.WriteBlock(s.conn, f.Picture); err != nil {
			return fmt.Errorf("%w: write picture block: %w", ErrIO, err)
		}
		lastSent = time.Now()

		if err := s.readAck(); err != nil {
			return err
		}
	}
}

// takeFrame waits once for a frame, up to the configured idle interval. It
// returns (frame, nil) on success, (nil, nil) on a benign idle timeout the
// caller should retry, and (nil, err) when the session must stop: err is
// errStopped when the listener's stop channel fired (ordinary shutdown),
// or a wrapped ErrStreamGone when st was deregistered out from under this
// subscriber. A take that ends with st.Gone() or sl.Closed() is reported as
// ErrStreamGone; listener shutdown is recognised only through s.stop, never
// through the slot, so the two exits stay distinct.
func (s *Session) takeFrame(st *registry.Stream, sl *slot.Slot) (*frame.Frame, error) {
	select {
	case <-s.stop:
		return nil, errStopped
	default:
	}

	f, ok := sl.TakeTimeout(s.cfg.IdleTakeTimeout)
	if ok {
		return f, nil
	}
	if st.Gone() || sl.Closed() {
		return nil, fmt.Errorf("%w: stream deregistered", ErrStreamGone)
	}
	return nil, nil // idle timeout, not closed: caller retries
}

func (s *Session) readAck() error {
	deadline := time.Now().Add(s.cfg.AckTimeout)
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("%w: set read deadline: %w", ErrIO, err)
	}
	if err := wire.ReadAck(s.conn); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return &TimeoutError{Op: "ack"}
		}
		if errors.Is(err, wire.ErrBadAck) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &ProtocolViolationError{Cause: err}
		}
		return fmt.Errorf("%w: read ack: %w", ErrIO, err)
	}
	return nil
}
