package rvideo

import (
	"errors"

	"rvideo/internal/conn"
	"rvideo/internal/registry"
	"rvideo/internal/wire"
)

// Sentinel errors returned by the public API. These alias the internal
// package that actually detects each condition (registry, wire, conn)
// rather than redeclaring new identities, so a caller's errors.Is check
// against a public sentinel matches what the library actually returns.
var (
	// ErrTooManyStreams is returned by CreateStream once 65536 streams have
	// been registered within this process's lifetime.
	ErrTooManyStreams = registry.ErrTooManyStreams

	// ErrStreamNotFound is returned when a client selects an id with no
	// registered stream.
	ErrStreamNotFound = conn.ErrStreamNotFound

	// ErrInvalidFpsRequested is returned when a client requests fps == 0.
	ErrInvalidFpsRequested = wire.ErrInvalidFps

	// ErrInvalidFormat is returned by StreamHandle.Send when a raw-format
	// picture's length does not match width*height*bytes_per_pixel.
	ErrInvalidFormat = errors.New("rvideo: invalid picture length for format")

	// ErrInvalidMetadata is returned when metadata exceeds the 4-byte
	// length prefix's range.
	ErrInvalidMetadata = errors.New("rvideo: metadata too large")

	// ErrProtocolViolation covers a malformed ACK, an unexpected EOF
	// mid-frame, or any other wire-level misbehavior by a client.
	ErrProtocolViolation = conn.ErrProtocolViolation

	// ErrIO wraps an underlying socket error.
	ErrIO = conn.ErrIO

	// ErrTimeout is returned when a client's ACK does not arrive within
	// the configured window.
	ErrTimeout = conn.ErrTimeout

	// ErrStreamGone is returned to a session whose stream was deregistered
	// while it was connected.
	ErrStreamGone = registry.ErrStreamGone
)

// ProtocolViolationError carries the underlying cause of a protocol
// violation, for callers that want more than a sentinel match. Returned by
// a session on a malformed ACK, on EOF while awaiting an ACK, or on a
// too-many-clients rejection during stream selection.
type ProtocolViolationError = conn.ProtocolViolationError

// TimeoutError reports which deadline a connection missed.
type TimeoutError = conn.TimeoutError
