package capture

import (
	"bytes"
	"image/jpeg"
	"sync/atomic"
	"time"

	"github.com/nfnt/resize"

	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/logging"
	"jordanella.com/market-sniper-go/internal/monitor"
)

const (
	previewWidth   = 480
	previewQuality = 50
	previewEvery   = 2 // emit a preview every Nth frame
	heartbeatEvery = 5 * time.Second
)

// Loop drives the capture provider at a fixed cadence and publishes frames
// into the shared slot. Optionally emits a downsampled JPEG preview on the
// event bus. Frames are dropped, never queued, when the slot is contended.
type Loop struct {
	provider Provider
	slot     *frame.Slot
	bus      events.EventBus
	health   *monitor.Health
	logger   *logging.Logger

	region   frame.Region
	interval time.Duration
	preview  bool
}

// NewLoop creates a capture loop for the given region and cadence.
func NewLoop(provider Provider, slot *frame.Slot, bus events.EventBus, health *monitor.Health, region frame.Region, fps int, preview bool) *Loop {
	if fps <= 0 {
		fps = 45
	}
	return &Loop{
		provider: provider,
		slot:     slot,
		bus:      bus,
		health:   health,
		logger:   logging.NewLogger("capture"),
		region:   region,
		interval: time.Second / time.Duration(fps),
		preview:  preview,
	}
}

// Run captures frames until the shared running flag is cleared. The flag
// is checked once per frame; a capture failure skips the frame and the
// loop continues.
func (l *Loop) Run(running *atomic.Bool) {
	l.logger.InfoWithContext("capture loop started", map[string]interface{}{
		"region": l.region,
		"fps":    int(time.Second / l.interval),
	})

	var frames uint64
	captured := 0
	lastHeartbeat := time.Now()

	for running.Load() {
		start := time.Now()

		f, err := l.provider.Capture(l.region)
		if err != nil {
			l.health.RecordCaptureFailure()
			l.logger.Error("capture failed", err)
			if l.bus != nil {
				l.bus.Publish(events.NewErrorEvent("capture", err))
			}
		} else {
			l.slot.Publish(f)
			l.health.RecordFrame()
			captured++

			if l.preview && l.bus != nil && frames%previewEvery == 0 {
				l.emitPreview(f)
			}
		}
		frames++

		if elapsed := time.Since(lastHeartbeat); elapsed >= heartbeatEvery {
			fps := float64(captured) / elapsed.Seconds()
			l.health.SetCaptureFPS(fps)
			l.logger.InfoWithContext("heartbeat", map[string]interface{}{
				"fps":     int(fps),
				"dropped": l.slot.Dropped(),
			})
			if l.bus != nil {
				l.bus.Publish(events.NewCaptureStatsEvent(fps, l.slot.Dropped()))
			}
			captured = 0
			lastHeartbeat = time.Now()
		}

		if remaining := l.interval - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	l.logger.Info("capture loop stopped")
}

// emitPreview downsamples the frame and publishes it as a JPEG preview.
// Preview failures are cosmetic and only logged.
func (l *Loop) emitPreview(f *frame.Frame) {
	small := resize.Resize(previewWidth, 0, f.ToRGBA(), resize.NearestNeighbor)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: previewQuality}); err != nil {
		l.logger.Error("preview encode failed", err)
		return
	}

	bounds := small.Bounds()
	l.bus.Publish(events.NewFramePreviewEvent(buf.Bytes(), bounds.Dx(), bounds.Dy()))
}
