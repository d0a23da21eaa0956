// Package rvideo is an in-process real-time video streaming server library:
// application code publishes frames onto named streams, and remote clients
// connect over a small binary TCP protocol to select a stream and receive
// frames at their own requested pace. The producer side is designed to
// incur minimal, bounded overhead — no server-side buffering beyond one
// frame per subscriber, no allocation-heavy hot path, and a slow client
// never blocks the producer.
package rvideo

import "rvideo/internal/frame"

// PixelFormat is the tagged format code carried in STREAM-INFO.
type PixelFormat = frame.PixelFormat

// Pixel format codes, mirroring the wire protocol's closed set.
const (
	Luma8   = frame.Luma8
	Luma16  = frame.Luma16
	LumaA8  = frame.LumaA8
	LumaA16 = frame.LumaA16
	Rgb8    = frame.Rgb8
	Rgb16   = frame.Rgb16
	RgbA8   = frame.RgbA8
	RgbA16  = frame.RgbA16
	Mjpeg   = frame.Mjpeg
)

// StreamInfo describes a registered stream: its id, pixel format, and
// dimensions. Immutable after registration.
type StreamInfo = frame.StreamInfo

// Frame is a (metadata, picture) pair handed to a stream for fan-out to its
// current subscribers. Metadata is opaque to the server; callers typically
// encode it with a format of their own choosing (MessagePack, JSON, a
// fixed struct) before passing it here.
type Frame = frame.Frame
