package frame

import (
	"sync"
	"sync/atomic"
)

// Slot is the latest-frame handoff between the capture loop and the brain
// loop. Only the most recent frame is ever visible; there is no queue.
type Slot struct {
	mu      sync.Mutex
	latest  *Frame
	dropped atomic.Uint64
}

// NewSlot creates an empty frame slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Publish makes f the latest frame. Best-effort: if the slot is contended
// the frame is dropped and Publish returns false immediately, so the
// capture loop never stalls on a slow reader.
func (s *Slot) Publish(f *Frame) bool {
	if !s.mu.TryLock() {
		s.dropped.Add(1)
		return false
	}
	s.latest = f
	s.mu.Unlock()
	return true
}

// Latest returns a cloned snapshot of the most recent frame, or nil if
// nothing has been published yet. The lock is held only for the copy.
func (s *Slot) Latest() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest.Clone()
}

// Dropped returns how many frames were discarded due to contention.
func (s *Slot) Dropped() uint64 {
	return s.dropped.Load()
}
