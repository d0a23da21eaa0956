// Package registry implements the process-wide stream registry and the
// per-stream subscriber set with fan-out, grounded on the bus package's
// Registry/Stream split but narrowed to this server's single-producer model:
// no publisher attach/detach, no cached init messages, one subscriber slot
// per connection instead of a ring buffer.
package registry

import (
	"errors"
	"sync/atomic"

	"rvideo/internal/frame"
	"rvideo/internal/rtlock"
	"rvideo/internal/slot"
)

// ErrStreamGone is surfaced to connection tasks subscribed to a stream that
// is deregistered. Send on a deregistered stream does not report it; the
// frame simply reaches no subscriber.
var ErrStreamGone = errors.New("registry: stream deregistered")

// Stream holds one video stream's immutable info and its live subscriber
// set. Subscribers may attach and detach concurrently with Send; Send holds
// the subscriber lock only in shared (read) mode, so fan-out cost is O(N)
// in subscriber count and never blocks on a slow client.
type Stream struct {
	info  frame.StreamInfo
	mu    rtlock.RWMutex
	subs  map[uint64]*slot.Slot
	nextS uint64
	gone  atomic.Bool
}

func newStream(info frame.StreamInfo) *Stream {
	return &Stream{
		info: info,
		mu:   rtlock.NewRWMutex(),
		subs: make(map[uint64]*slot.Slot),
	}
}

// Info returns the stream's immutable registration info.
func (s *Stream) Info() frame.StreamInfo {
	return s.info
}

// Subscribe attaches a new subscriber slot and returns it along with a
// token to later Unsubscribe. The returned slot is already live; any Send
// racing with this call either reaches the new slot or doesn't, with no
// partial delivery either way.
func (s *Stream) Subscribe() (sl *slot.Slot, token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token = s.nextS
	s.nextS++
	sl = slot.New()
	s.subs[token] = sl
	return sl, token
}

// Unsubscribe detaches the subscriber identified by token. The slot is not
// closed here; callers that own the slot close it themselves once their
// reader has observed the detach.
func (s *Stream) Unsubscribe(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, token)
}

// SubscriberCount returns the number of currently attached subscribers.
func (s *Stream) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Send fans f out to every currently attached subscriber's slot. Zero
// subscribers is legal and cheap: only the shared lock is taken, no
// allocation occurs. Send itself never blocks on a reader; Publish on each
// slot is wait-free.
func (s *Stream) Send(f *frame.Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.subs {
		sl.Publish(f)
	}
}

// markGone closes every attached subscriber slot and flags the stream as
// deregistered, so connection tasks blocked in Take observe ErrStreamGone.
func (s *Stream) markGone() {
	s.gone.Store(true)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.subs {
		sl.Close()
	}
}

// Gone reports whether the owning registry has deregistered this stream.
func (s *Stream) Gone() bool {
	return s.gone.Load()
}
