package engine

import (
	"sync"
	"sync/atomic"

	"jordanella.com/market-sniper-go/internal/capture"
	"jordanella.com/market-sniper-go/internal/config"
	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/input"
	"jordanella.com/market-sniper-go/internal/ledger"
	"jordanella.com/market-sniper-go/internal/logging"
	"jordanella.com/market-sniper-go/internal/monitor"
	"jordanella.com/market-sniper-go/internal/notify"
	"jordanella.com/market-sniper-go/internal/ocr"
)

// Options wires the engine's external collaborators. Capture and Input are
// required; the rest may be nil to disable the corresponding feature.
type Options struct {
	Config     *config.Config
	Capture    capture.Provider
	Input      input.Provider
	Recognizer RecognizerFactory
	Bus        events.EventBus
	Ledger     *ledger.Ledger
}

// RecognizerFactory constructs the recognition provider inside the brain
// loop at startup, so a failure degrades the loop instead of aborting it.
type RecognizerFactory func() (ocr.Provider, error)

// Engine runs the perception-action loop: a capture loop and a brain loop
// sharing one frame slot and one stop flag.
type Engine struct {
	captureLoop *capture.Loop
	brain       *brain
	health      *monitor.Health
	bus         events.EventBus
	logger      *logging.Logger

	mu      sync.Mutex
	running atomic.Bool
	wg      sync.WaitGroup
}

// New assembles an engine from configuration and providers.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := logging.NewLogger("engine")

	region := cfg.CaptureRegion
	if cfg.TargetWindow != "" {
		resolved, err := capture.ResolveWindowRegion(cfg.TargetWindow)
		if err != nil {
			logger.WarnWithContext("target window unavailable, using configured region", map[string]interface{}{
				"window": cfg.TargetWindow,
				"error":  err.Error(),
			})
		} else {
			region = resolved
			logger.InfoWithContext("capturing target window", map[string]interface{}{
				"window": cfg.TargetWindow,
				"region": region,
			})
		}
	}

	health := monitor.NewHealth()
	slot := frame.NewSlot()

	captureLoop := capture.NewLoop(
		opts.Capture, slot, opts.Bus, health,
		region, cfg.CaptureFPS, cfg.PreviewEnabled,
	)

	actuator := input.NewActuator(opts.Input)

	b := &brain{
		slot:          slot,
		roi:           cfg.ROI,
		newRecognizer: opts.Recognizer,
		rules:         cfg.Rules,
		actuator:      actuator,
		idle:          input.NewIdleScheduler(actuator),
		actionKey:     input.ParseKey(cfg.ActionKey),
		holdDuration:  cfg.HoldDuration,
		discord:       notify.NewDiscord(cfg.DiscordWebhookURL),
		notifySuccess: cfg.NotifyOnSuccess,
		notifyError:   cfg.NotifyOnError,
		inventory:     notify.NewInventory(cfg.InventoryURL, cfg.APISecret),
		account:       cfg.AccountContext,
		evidenceDir:   cfg.EvidenceDir,
		ledger:        opts.Ledger,
		bus:           opts.Bus,
		health:        health,
		logger:        logging.NewLogger("brain"),
	}
	if cfg.VerboseLogging {
		b.logger.SetMinLevel(logging.LogLevelDebug)
	}

	return &Engine{
		captureLoop: captureLoop,
		brain:       b,
		health:      health,
		bus:         opts.Bus,
		logger:      logger,
	}
}

// Start spawns both loops. A second Start while running is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return
	}
	e.running.Store(true)
	e.logger.Info("engine starting")

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.captureLoop.Run(&e.running)
	}()
	go func() {
		defer e.wg.Done()
		e.brain.run(&e.running)
	}()

	if e.bus != nil {
		e.bus.Publish(events.Event{Type: events.EventTypeEngineStarted, Source: "engine"})
	}
}

// Stop clears the running flag and joins both loops. Idempotent; returns
// only after both loops have ceased touching shared state. In-flight
// recognition or action calls are allowed to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Load() {
		return
	}
	e.running.Store(false)
	e.wg.Wait()
	e.logger.Info("engine stopped")

	if e.bus != nil {
		e.bus.Publish(events.Event{Type: events.EventTypeEngineStopped, Source: "engine"})
	}
}

// IsRunning reports whether the loops are active.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Health returns the engine's health tracker.
func (e *Engine) Health() *monitor.Health {
	return e.health
}
