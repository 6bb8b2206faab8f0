package engine

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"jordanella.com/market-sniper-go/internal/config"
	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/ledger"
	"jordanella.com/market-sniper-go/internal/ocr"
	"jordanella.com/market-sniper-go/internal/rules"
)

// fakeCapture produces blank frames of the requested region size.
type fakeCapture struct {
	mu         sync.Mutex
	captures   int
	lastRegion frame.Region
}

func (c *fakeCapture) Capture(region frame.Region) (*frame.Frame, error) {
	c.mu.Lock()
	c.captures++
	c.lastRegion = region
	c.mu.Unlock()
	pixels := make([]byte, region.Width*region.Height*frame.BytesPerPixel)
	return frame.NewFrame(pixels, region.Width, region.Height), nil
}

func (c *fakeCapture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captures
}

func (c *fakeCapture) region() frame.Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRegion
}

// fakeRecognizer returns a fixed token list on its first call only.
type fakeRecognizer struct {
	mu     sync.Mutex
	tokens []ocr.Token
	calls  int
}

func (r *fakeRecognizer) Recognize(bgra []byte, w, h int) ([]ocr.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls == 1 {
		return r.tokens, nil
	}
	return nil, nil
}

func (r *fakeRecognizer) Close() error { return nil }

// fakeInput records key events.
type fakeInput struct {
	mu     sync.Mutex
	events []string
}

func (i *fakeInput) record(e string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.events = append(i.events, e)
}

func (i *fakeInput) Press(key string) error   { i.record("press:" + key); return nil }
func (i *fakeInput) Release(key string) error { i.record("release:" + key); return nil }
func (i *fakeInput) ClickDown() error         { i.record("click_down"); return nil }
func (i *fakeInput) ClickUp() error           { i.record("click_up"); return nil }

func (i *fakeInput) snapshot() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.events))
	copy(out, i.events)
	return out
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.CaptureRegion = frame.Region{X: 0, Y: 0, Width: 64, Height: 64}
	cfg.ROI = frame.Region{X: 0, Y: 0, Width: 32, Height: 32}
	cfg.CaptureFPS = 100
	cfg.PreviewEnabled = false
	cfg.HoldDuration = 20 * time.Millisecond
	cfg.EvidenceDir = filepath.Join(t.TempDir(), "evidence")
	return cfg
}

func TestEngineStartStopIdempotent(t *testing.T) {
	cfg := testConfig(t)
	e := New(Options{
		Config:  cfg,
		Capture: &fakeCapture{},
		Input:   &fakeInput{},
		Recognizer: func() (ocr.Provider, error) {
			return &fakeRecognizer{}, nil
		},
	})

	e.Start()
	e.Start() // no-op while running
	if !e.IsRunning() {
		t.Fatal("engine should be running after Start")
	}

	time.Sleep(100 * time.Millisecond)

	e.Stop()
	if e.IsRunning() {
		t.Fatal("engine should not be running after Stop")
	}
	e.Stop() // idempotent
}

func TestEngineStopQuiescesLoops(t *testing.T) {
	capturer := &fakeCapture{}
	cfg := testConfig(t)
	e := New(Options{
		Config:  cfg,
		Capture: capturer,
		Input:   &fakeInput{},
		Recognizer: func() (ocr.Provider, error) {
			return &fakeRecognizer{}, nil
		},
	})

	e.Start()
	time.Sleep(100 * time.Millisecond)
	e.Stop()

	quiesced := capturer.count()
	time.Sleep(100 * time.Millisecond)
	if capturer.count() != quiesced {
		t.Error("capture loop kept running after Stop returned")
	}
}

func TestEngineFiresOnMatch(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rules = []rules.Rule{{
		ID:        "fire-swords",
		Triggers:  []string{"excalibur"},
		Attribute: "fire",
	}}

	inputProvider := &fakeInput{}
	ledgerPath := filepath.Join(t.TempDir(), "ledger.db")
	l, err := ledger.Open(ledgerPath)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	defer l.Close()

	e := New(Options{
		Config:  cfg,
		Capture: &fakeCapture{},
		Input:   inputProvider,
		Ledger:  l,
		Recognizer: func() (ocr.Provider, error) {
			return &fakeRecognizer{tokens: []ocr.Token{
				{Text: "Fire", Y: 2},
				{Text: "Excalibur Sword 1,250", Y: 20},
			}}, nil
		},
	})

	e.Start()

	deadline := time.After(3 * time.Second)
	for {
		events := inputProvider.snapshot()
		if len(events) >= 2 {
			if events[0] != "press:e" || events[1] != "release:e" {
				t.Fatalf("input events = %v, want press:e then release:e", events)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("rule never fired an action")
		case <-time.After(20 * time.Millisecond):
		}
	}
	e.Stop()

	// Side effects: ledger entry recorded with the firing's fields.
	waitEntries := time.After(2 * time.Second)
	for {
		entries, err := l.Recent(10)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) > 0 {
			if entries[0].RuleID != "fire-swords" || entries[0].Attribute != "Fire" {
				t.Errorf("ledger entry = %+v", entries[0])
			}
			return
		}
		select {
		case <-waitEntries:
			t.Fatal("firing was never recorded in the ledger")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestEngineFallsBackWhenTargetWindowUnavailable(t *testing.T) {
	capturer := &fakeCapture{}
	cfg := testConfig(t)
	cfg.TargetWindow = "No Such Window"

	e := New(Options{
		Config:  cfg,
		Capture: capturer,
		Input:   &fakeInput{},
		Recognizer: func() (ocr.Provider, error) {
			return &fakeRecognizer{}, nil
		},
	})

	e.Start()
	time.Sleep(100 * time.Millisecond)
	e.Stop()

	if capturer.count() == 0 {
		t.Fatal("capture loop never ran")
	}
	if got := capturer.region(); got != cfg.CaptureRegion {
		t.Errorf("capture region = %+v, want configured fallback %+v", got, cfg.CaptureRegion)
	}
}

func TestEnginePublishesRecognitionEvents(t *testing.T) {
	cfg := testConfig(t)
	bus := events.NewEventBus(64)
	defer bus.Stop()

	counts := make(chan events.Event, 64)
	bus.Subscribe(events.EventTypeTokensRecognized, func(e events.Event) {
		select {
		case counts <- e:
		default:
		}
	})

	e := New(Options{
		Config:  cfg,
		Capture: &fakeCapture{},
		Input:   &fakeInput{},
		Bus:     bus,
		Recognizer: func() (ocr.Provider, error) {
			return &fakeRecognizer{tokens: []ocr.Token{
				{Text: "Fire", Y: 2},
				{Text: "Excalibur Sword 1,250", Y: 20},
			}}, nil
		},
	})

	e.Start()
	defer e.Stop()

	select {
	case ev := <-counts:
		if ev.Data["count"] != 2 {
			t.Errorf("tokens event count = %v, want 2", ev.Data["count"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("recognition pass emitted no tokens event")
	}
}

func TestEngineReportsRecognizerFailure(t *testing.T) {
	cfg := testConfig(t)
	bus := events.NewEventBus(64)
	defer bus.Stop()

	errs := make(chan events.Event, 64)
	bus.Subscribe(events.EventTypeError, func(e events.Event) {
		select {
		case errs <- e:
		default:
		}
	})

	e := New(Options{
		Config:  cfg,
		Capture: &fakeCapture{},
		Input:   &fakeInput{},
		Bus:     bus,
		Recognizer: func() (ocr.Provider, error) {
			return nil, errors.New("tesseract not installed")
		},
	})

	e.Start()
	defer e.Stop()

	select {
	case ev := <-errs:
		if ev.Source != "brain" {
			t.Errorf("error event source = %q, want brain", ev.Source)
		}
		if ev.Data["error"] != "tesseract not installed" {
			t.Errorf("error event data = %v", ev.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("recognizer failure emitted no error event")
	}
}

func TestEngineDegradesWithoutRecognizer(t *testing.T) {
	cfg := testConfig(t)
	e := New(Options{
		Config:  cfg,
		Capture: &fakeCapture{},
		Input:   &fakeInput{},
		Recognizer: func() (ocr.Provider, error) {
			return nil, errors.New("tesseract not installed")
		},
	})

	e.Start()
	time.Sleep(100 * time.Millisecond)

	if !e.IsRunning() {
		t.Fatal("engine must keep running without recognition")
	}
	if !e.Health().Snapshot().OCRDegraded {
		t.Error("health should report recognition as degraded")
	}
	e.Stop()
}
