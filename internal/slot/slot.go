// Package slot implements the per-subscriber latest-value cell: the single
// element exchanger between one producer and one reader described in the
// stream publication design. It narrows the teacher's ring buffer
// (bus.RingBuffer, drop-oldest only) down to a single cell, since a
// subscriber only ever wants the most recent frame, never a backlog.
package slot

import (
	"context"
	"sync/atomic"
	"time"

	"rvideo/internal/frame"
)

// Slot is a single-cell mailbox holding at most one pending frame. Publish
// is wait-free and never blocks on the reader; Take/TakeTimeout block the
// single reader until a frame arrives, the slot is closed, or a deadline
// passes.
type Slot struct {
	cell    atomic.Pointer[frame.Frame]
	notify  chan struct{} // capacity 1, edge-triggered
	closed  atomic.Bool
	dropped atomic.Uint64
}

// New returns an empty slot.
func New() *Slot {
	return &Slot{notify: make(chan struct{}, 1)}
}

// Publish places f into the slot, replacing and dropping any unread frame.
// Called only by the producer side of a single stream's fan-out; safe to
// call concurrently with Take/TakeTimeout/Close but never from more than one
// publishing goroutine at a time.
func (s *Slot) Publish(f *frame.Frame) {
	if s.closed.Load() {
		return
	}
	if old := s.cell.Swap(f); old != nil {
		s.dropped.Add(1)
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Take blocks until a frame is available, the slot is closed, or ctx is
// done. ok is false when the slot was closed before a frame arrived.
func (s *Slot) Take(ctx context.Context) (f *frame.Frame, ok bool) {
	for {
		if v := s.cell.Swap(nil); v != nil {
			return v, true
		}
		if s.closed.Load() {
			return nil, false
		}
		select {
		case <-s.notify:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// TakeTimeout behaves like Take but gives up after d if no frame arrives.
func (s *Slot) TakeTimeout(d time.Duration) (f *frame.Frame, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.Take(ctx)
}

// Close marks the slot closed; a blocked Take, and any later Take once the
// cell is empty, returns ok=false. A frame published before Close is still
// returned by the next Take. Idempotent.
func (s *Slot) Close() {
	if s.closed.CompareAndSwap(false, true) {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// Closed reports whether Close has been called.
func (s *Slot) Closed() bool {
	return s.closed.Load()
}

// Dropped returns the number of frames overwritten before being taken.
func (s *Slot) Dropped() uint64 {
	return s.dropped.Load()
}
