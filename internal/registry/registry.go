package registry

import (
	"errors"

	"rvideo/internal/frame"
	"rvideo/internal/rtlock"
)

// ErrTooManyStreams is returned by Register once 65536 streams have been
// assigned within this process's lifetime.
var ErrTooManyStreams = errors.New("registry: too many streams")

// maxStreams is the id space of a uint16: ids 0..65535, never reused.
const maxStreams = 1 << 16

// Registry is the process-wide mapping from stream id to Stream. The lock
// guards map mutation only, never I/O or frame publication; register and
// deregister exclude each other and lookups, but a lookup never blocks a
// concurrent Send on a different stream since Send operates on the Stream
// value, not the registry map.
type Registry struct {
	mu      rtlock.Mutex
	streams map[uint16]*Stream
	nextID  uint32 // tracked past uint16 range to detect exhaustion precisely
}

// New returns an empty registry. Callers normally use the process-wide
// singleton returned by Default rather than constructing their own, but a
// private instance is useful in tests.
func New() *Registry {
	return &Registry{
		mu:      rtlock.NewMutex(),
		streams: make(map[uint16]*Stream),
	}
}

// Register allocates the next free sequential id and creates an empty
// stream for it. Ids are monotonic and never reused within a process run,
// even across Deregister calls.
func (r *Registry) Register(format frame.PixelFormat, width, height uint16) (*Stream, uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nextID >= maxStreams {
		return nil, 0, ErrTooManyStreams
	}
	id := uint16(r.nextID)
	r.nextID++

	info := frame.StreamInfo{StreamID: id, Format: format, Width: width, Height: height}
	st := newStream(info)
	r.streams[id] = st
	return st, id, nil
}

// Lookup returns the stream registered under id, or false if none exists
// (never registered, or already deregistered).
func (r *Registry) Lookup(id uint16) (*Stream, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.streams[id]
	return st, ok
}

// Count returns the number of currently registered streams, used in the
// GREETINGS message.
func (r *Registry) Count() uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint16(len(r.streams))
}

// Snapshot returns the currently registered stream ids, in no particular
// order. Used by the introspection surface; never called on the producer
// or connection hot paths.
func (r *Registry) Snapshot() []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint16, 0, len(r.streams))
	for id := range r.streams {
		ids = append(ids, id)
	}
	return ids
}

// Deregister removes id from the registry and closes every attached
// subscriber's slot so their connection tasks observe stream-gone. A
// deregister of an unknown or already-deregistered id is a benign no-op.
func (r *Registry) Deregister(id uint16) {
	r.mu.Lock()
	st, ok := r.streams[id]
	if ok {
		delete(r.streams, id)
	}
	r.mu.Unlock()

	if ok {
		st.markGone()
	}
}
