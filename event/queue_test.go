package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/deskrush/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventTaskActivated, Frame: int64(i)})
	}

	if q.Len() != 5 {
		t.Fatalf("Len = %d, want 5", q.Len())
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Consume returned %d events, want 5", len(got))
	}
	for i, ev := range got {
		if ev.Frame != int64(i) {
			t.Errorf("event %d has frame %d", i, ev.Frame)
		}
	}

	if again := q.Consume(); again != nil {
		t.Errorf("second Consume returned %d events, want none", len(again))
	}
}

// TestQueueOverflowDropsOldest verifies the ring overwrites unread events and counts them
func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Frame: int64(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Consume returned %d events, want %d", len(got), parameter.EventQueueSize)
	}
	if got[0].Frame != 10 {
		t.Errorf("oldest surviving frame = %d, want 10", got[0].Frame)
	}
	if q.Dropped() != 10 {
		t.Errorf("Dropped = %d, want 10", q.Dropped())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 16; i++ {
				q.Push(GameEvent{Type: EventPawnGrabbed})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 64 {
		t.Errorf("consumed %d events, want 64", got)
	}
}
