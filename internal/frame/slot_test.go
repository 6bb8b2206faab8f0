package frame

import (
	"bytes"
	"sync"
	"testing"
)

func TestSlotEmptyReturnsNil(t *testing.T) {
	slot := NewSlot()
	if got := slot.Latest(); got != nil {
		t.Errorf("Latest() on empty slot = %v, want nil", got)
	}
}

func TestSlotLatestIsClone(t *testing.T) {
	slot := NewSlot()
	original := NewFrame([]byte{1, 2, 3, 4}, 1, 1)
	slot.Publish(original)

	snapshot := slot.Latest()
	if snapshot == nil {
		t.Fatal("expected snapshot, got nil")
	}
	snapshot.Pixels[0] = 99

	second := slot.Latest()
	if second.Pixels[0] != 1 {
		t.Error("mutating a snapshot must not affect the slot contents")
	}
}

func TestSlotLastWriteWins(t *testing.T) {
	slot := NewSlot()
	for v := byte(1); v <= 5; v++ {
		slot.Publish(NewFrame(bytes.Repeat([]byte{v}, 4), 1, 1))
	}
	got := slot.Latest()
	if got == nil || got.Pixels[0] != 5 {
		t.Fatalf("Latest() = %v, want frame published last", got)
	}
}

// TestSlotConcurrentPublishRead simulates the capture and brain loops
// hammering the slot from both sides. The reader must never observe a torn
// frame: every published buffer is filled with a single byte value, so any
// mix of values in a snapshot would indicate a partial write.
func TestSlotConcurrentPublishRead(t *testing.T) {
	slot := NewSlot()
	const frames = 2000
	const frameLen = 256

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < frames; i++ {
			v := byte(i % 251)
			slot.Publish(NewFrame(bytes.Repeat([]byte{v}, frameLen), frameLen/BytesPerPixel, 1))
		}
	}()

	torn := false
	go func() {
		defer wg.Done()
		for i := 0; i < frames; i++ {
			f := slot.Latest()
			if f == nil {
				continue
			}
			first := f.Pixels[0]
			for _, b := range f.Pixels {
				if b != first {
					torn = true
					return
				}
			}
		}
	}()

	wg.Wait()
	if torn {
		t.Fatal("reader observed a torn frame")
	}
}

func TestSlotDroppedCounter(t *testing.T) {
	slot := NewSlot()
	slot.mu.Lock()
	if slot.Publish(NewFrame([]byte{0, 0, 0, 0}, 1, 1)) {
		t.Error("Publish should fail while the slot is held")
	}
	slot.mu.Unlock()

	if slot.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", slot.Dropped())
	}
	if !slot.Publish(NewFrame([]byte{0, 0, 0, 0}, 1, 1)) {
		t.Error("Publish should succeed on an uncontended slot")
	}
}
