package registry

import (
	"testing"
	"time"

	"rvideo/internal/frame"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	st := newStream(frame.StreamInfo{StreamID: 0, Format: frame.Luma8, Width: 2, Height: 2})
	sl, token := st.Subscribe()
	if st.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", st.SubscriberCount())
	}
	st.Unsubscribe(token)
	if st.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0 after Unsubscribe", st.SubscriberCount())
	}
	_ = sl
}

func TestSendFansOutToAllSubscribers(t *testing.T) {
	st := newStream(frame.StreamInfo{StreamID: 0, Format: frame.Luma8, Width: 1, Height: 1})
	sl1, _ := st.Subscribe()
	sl2, _ := st.Subscribe()

	st.Send(&frame.Frame{Picture: []byte{0xAB}})

	f1, ok := sl1.TakeTimeout(time.Second)
	if !ok || f1.Picture[0] != 0xAB {
		t.Error("subscriber 1 did not receive the frame")
	}
	f2, ok := sl2.TakeTimeout(time.Second)
	if !ok || f2.Picture[0] != 0xAB {
		t.Error("subscriber 2 did not receive the frame")
	}
}

func TestSendWithZeroSubscribersIsLegal(t *testing.T) {
	st := newStream(frame.StreamInfo{StreamID: 0, Format: frame.Luma8, Width: 1, Height: 1})
	st.Send(&frame.Frame{Picture: []byte{0x01}}) // must not panic or block
}

func TestUnsubscribedSlotNeverWrittenAgain(t *testing.T) {
	st := newStream(frame.StreamInfo{StreamID: 0, Format: frame.Luma8, Width: 1, Height: 1})
	sl, token := st.Subscribe()
	st.Unsubscribe(token)
	st.Send(&frame.Frame{Picture: []byte{0x02}})

	if _, ok := sl.TakeTimeout(50 * time.Millisecond); ok {
		t.Error("detached subscriber slot should not receive further frames")
	}
}
