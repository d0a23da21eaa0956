package rvideo

import (
	"fmt"

	"rvideo/internal/frame"
	"rvideo/internal/registry"
)

// StreamHandle is returned by CreateStream. It is the producer's handle
// for publishing frames to every currently connected subscriber of this
// stream, and for deregistering the stream when it is no longer produced.
type StreamHandle struct {
	id uint16
	st *registry.Stream
}

// CreateStream registers a new stream of the given format and dimensions
// with the process-wide registry, returning a handle the caller uses to
// publish frames. Fails with ErrTooManyStreams once 65536 streams have been
// registered in this process's lifetime.
func CreateStream(format PixelFormat, width, height uint16) (*StreamHandle, error) {
	st, id, err := registry.Default().Register(format, width, height)
	if err != nil {
		return nil, err
	}
	return &StreamHandle{id: id, st: st}, nil
}

// ID returns the stream's assigned id.
func (h *StreamHandle) ID() uint16 {
	return h.id
}

// Info returns the stream's registered format and dimensions.
func (h *StreamHandle) Info() StreamInfo {
	return h.st.Info()
}

// Send publishes f to every currently attached subscriber. Zero
// subscribers is legal and cheap. For raw (non-Mjpeg) formats, the
// picture's length must equal width*height*bytes_per_pixel(format); a
// mismatch is rejected with ErrInvalidFormat and affects no subscriber.
// Metadata longer than 2^32-1 bytes is rejected with ErrInvalidMetadata.
func (h *StreamHandle) Send(f Frame) error {
	if err := frame.ValidatePicture(h.st.Info(), f.Picture); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if uint64(len(f.Metadata)) > 1<<32-1 {
		return ErrInvalidMetadata
	}
	h.st.Send(&f)
	return nil
}

// Deregister removes the stream from the registry. Every currently
// connected subscriber's session observes ErrStreamGone and closes;
// deregistering an already-deregistered handle is a benign no-op.
func (h *StreamHandle) Deregister() {
	registry.Default().Deregister(h.id)
}
