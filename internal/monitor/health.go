package monitor

import (
	"sync"
	"time"
)

// Health tracks the runtime condition of the perception-action loop:
// capture cadence, consecutive transient failures per stage, and whether
// recognition is degraded. Written by the loops, read by the GUI and the
// heartbeat log.
type Health struct {
	mu sync.RWMutex

	captureFPS       float64
	lastFrameAt      time.Time
	captureFailures  int
	ocrFailures      int
	ocrDegraded      bool
	passesCompleted  uint64
	firingsTriggered uint64
}

// Snapshot is a point-in-time copy of the health state.
type Snapshot struct {
	CaptureFPS       float64
	LastFrameAge     time.Duration
	CaptureFailures  int
	OCRFailures      int
	OCRDegraded      bool
	PassesCompleted  uint64
	FiringsTriggered uint64
}

// NewHealth creates an empty health tracker.
func NewHealth() *Health {
	return &Health{}
}

// RecordFrame notes a successful capture and resets the failure streak.
func (h *Health) RecordFrame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastFrameAt = time.Now()
	h.captureFailures = 0
}

// RecordCaptureFailure increments the consecutive-capture-failure streak.
func (h *Health) RecordCaptureFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captureFailures++
}

// SetCaptureFPS records the measured capture cadence.
func (h *Health) SetCaptureFPS(fps float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captureFPS = fps
}

// RecordPass notes one completed analysis pass and resets the OCR streak.
func (h *Health) RecordPass() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.passesCompleted++
	h.ocrFailures = 0
}

// RecordOCRFailure increments the consecutive-recognition-failure streak.
func (h *Health) RecordOCRFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ocrFailures++
}

// SetOCRDegraded marks recognition as unavailable; the brain loop keeps
// running without it.
func (h *Health) SetOCRDegraded(degraded bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ocrDegraded = degraded
}

// RecordFiring notes one fired rule.
func (h *Health) RecordFiring() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.firingsTriggered++
}

// Snapshot returns a copy of the current health state.
func (h *Health) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	age := time.Duration(0)
	if !h.lastFrameAt.IsZero() {
		age = time.Since(h.lastFrameAt)
	}
	return Snapshot{
		CaptureFPS:       h.captureFPS,
		LastFrameAge:     age,
		CaptureFailures:  h.captureFailures,
		OCRFailures:      h.ocrFailures,
		OCRDegraded:      h.ocrDegraded,
		PassesCompleted:  h.passesCompleted,
		FiringsTriggered: h.firingsTriggered,
	}
}
