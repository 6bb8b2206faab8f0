package input

import (
	"math/rand"
	"sync"
	"time"

	"jordanella.com/market-sniper-go/internal/logging"
)

// Humanized timing bounds. Every discrete input is preceded by a small
// random delay and holds carry extra jitter, so the emitted timing is
// never perfectly periodic.
const (
	preDelayMin   = 20 * time.Millisecond
	preDelayMax   = 50 * time.Millisecond
	pressHoldMin  = 50 * time.Millisecond
	pressHoldMax  = 120 * time.Millisecond
	clickHoldMin  = 50 * time.Millisecond
	clickHoldMax  = 100 * time.Millisecond
	holdJitterMax = 100 * time.Millisecond

	// DefaultHold is the long-press duration when configuration supplies none.
	DefaultHold = 1200 * time.Millisecond
)

// Actuator performs humanized, randomized-timing input sequences through a
// provider.
type Actuator struct {
	provider Provider
	logger   *logging.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewActuator creates an actuator over the given input provider.
func NewActuator(provider Provider) *Actuator {
	return &Actuator{
		provider: provider,
		logger:   logging.NewLogger("actuator"),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// LongPress presses key, holds it for the configured duration plus random
// jitter, then releases it.
func (a *Actuator) LongPress(key string, hold time.Duration) error {
	a.sleep(preDelayMin, preDelayMax)
	if err := a.provider.Press(key); err != nil {
		return err
	}
	time.Sleep(hold + a.jitter(holdJitterMax))
	return a.provider.Release(key)
}

// Press performs a brief humanized key tap.
func (a *Actuator) Press(key string) error {
	a.sleep(preDelayMin, preDelayMax)
	if err := a.provider.Press(key); err != nil {
		return err
	}
	a.sleep(pressHoldMin, pressHoldMax)
	return a.provider.Release(key)
}

// Click performs a humanized left mouse click.
func (a *Actuator) Click() error {
	a.sleep(preDelayMin, preDelayMax)
	if err := a.provider.ClickDown(); err != nil {
		return err
	}
	a.sleep(clickHoldMin, clickHoldMax)
	return a.provider.ClickUp()
}

func (a *Actuator) sleep(min, max time.Duration) {
	time.Sleep(min + a.jitter(max-min))
}

func (a *Actuator) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return time.Duration(a.rng.Int63n(int64(max)))
}

// Anti-idle bounds: one brief directional press on a randomized
// multi-minute interval keeps the host application from treating the
// process as disconnected.
const (
	idleIntervalMin = 60 * time.Second
	idleIntervalMax = 180 * time.Second
)

var idleKeys = []string{"w", "a", "s", "d"}

// IdleScheduler performs the anti-idle micro-action. Not safe for
// concurrent use; it is driven from a single loop.
type IdleScheduler struct {
	actuator *Actuator
	rng      *rand.Rand
	next     time.Time
}

// NewIdleScheduler creates a scheduler with a freshly drawn first interval.
func NewIdleScheduler(actuator *Actuator) *IdleScheduler {
	s := &IdleScheduler{
		actuator: actuator,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano() + 1)),
	}
	s.redraw()
	return s
}

// Tick performs one random directional press if the interval has elapsed,
// then redraws a new interval. Returns true when an action was performed.
func (s *IdleScheduler) Tick() bool {
	if time.Now().Before(s.next) {
		return false
	}
	key := idleKeys[s.rng.Intn(len(idleKeys))]
	if err := s.actuator.Press(key); err != nil {
		s.actuator.logger.Error("anti-idle press failed", err)
	} else {
		s.actuator.logger.DebugWithContext("anti-idle press", map[string]interface{}{"key": key})
	}
	s.redraw()
	return true
}

func (s *IdleScheduler) redraw() {
	span := int64(idleIntervalMax - idleIntervalMin)
	s.next = time.Now().Add(idleIntervalMin + time.Duration(s.rng.Int63n(span)))
}
