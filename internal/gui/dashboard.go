package gui

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/market-sniper-go/internal/engine"
	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/ledger"
)

const maxLogLines = 200

// Dashboard is the main window content: live capture preview, engine
// controls, health readout, recent firings and a log pane.
type Dashboard struct {
	engine *engine.Engine
	bus    events.EventBus
	ledger *ledger.Ledger

	preview     *canvas.Image
	statusLabel *widget.Label
	statsLabel  *widget.Label
	startBtn    *widget.Button
	stopBtn     *widget.Button
	logView     *widget.Label
	firingsList *widget.List

	logLines []string
	firings  []ledger.Entry

	subscriptions []events.SubscriptionID
}

// NewDashboard wires the dashboard to a constructed engine.
func NewDashboard(e *engine.Engine, bus events.EventBus, journal *ledger.Ledger) *Dashboard {
	return &Dashboard{
		engine: e,
		bus:    bus,
		ledger: journal,
	}
}

// Build constructs the dashboard UI and subscribes to engine events.
func (d *Dashboard) Build() fyne.CanvasObject {
	d.preview = canvas.NewImageFromImage(nil)
	d.preview.FillMode = canvas.ImageFillContain
	d.preview.SetMinSize(fyne.NewSize(480, 270))

	d.statusLabel = widget.NewLabel("Stopped")
	d.statsLabel = widget.NewLabel("")
	d.logView = widget.NewLabel("")
	d.logView.Wrapping = fyne.TextWrapWord

	d.startBtn = widget.NewButton("Start", func() {
		d.engine.Start()
	})
	d.stopBtn = widget.NewButton("Stop", func() {
		// Stop joins both loops; keep the UI thread free.
		go d.engine.Stop()
	})

	d.firingsList = widget.NewList(
		func() int { return len(d.firings) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(d.firings) {
				return
			}
			entry := d.firings[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s  %.0f  [%s]",
				entry.FiredAt.Format("15:04:05"), entry.Item, entry.Price, entry.RuleID))
		},
	)
	d.reloadFirings()

	d.subscribe()

	controls := container.NewHBox(d.startBtn, d.stopBtn, d.statusLabel, d.statsLabel)
	left := container.NewBorder(controls, nil, nil, nil, d.preview)
	right := container.NewBorder(widget.NewLabel("Recent firings"), nil, nil, nil, d.firingsList)

	logScroll := container.NewVScroll(d.logView)
	logScroll.SetMinSize(fyne.NewSize(0, 140))

	return container.NewBorder(nil, logScroll, nil, nil,
		container.NewHSplit(left, right))
}

// Shutdown unsubscribes the dashboard from the bus.
func (d *Dashboard) Shutdown() {
	for _, id := range d.subscriptions {
		d.bus.Unsubscribe(id)
	}
}

func (d *Dashboard) subscribe() {
	if d.bus == nil {
		return
	}

	d.subscriptions = append(d.subscriptions,
		d.bus.Subscribe(events.EventTypeFramePreview, d.onPreview),
		d.bus.Subscribe(events.EventTypeCaptureStats, d.onStats),
		d.bus.Subscribe(events.EventTypeRuleFired, d.onRuleFired),
		d.bus.Subscribe(events.EventTypeEngineStarted, func(events.Event) {
			fyne.Do(func() { d.statusLabel.SetText("Running") })
			d.appendLog("engine started")
		}),
		d.bus.Subscribe(events.EventTypeEngineStopped, func(events.Event) {
			fyne.Do(func() { d.statusLabel.SetText("Stopped") })
			d.appendLog("engine stopped")
		}),
		d.bus.Subscribe(events.EventTypeError, func(e events.Event) {
			d.appendLog(fmt.Sprintf("error from %s: %v", e.Source, e.Data["error"]))
		}),
	)
}

func (d *Dashboard) onPreview(e events.Event) {
	data, ok := e.Data["jpeg"].([]byte)
	if !ok || len(data) == 0 {
		return
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	fyne.Do(func() {
		d.preview.Image = img
		d.preview.Refresh()
	})
}

func (d *Dashboard) onStats(e events.Event) {
	fps, _ := e.Data["fps"].(float64)
	dropped, _ := e.Data["dropped"].(uint64)
	snapshot := d.engine.Health().Snapshot()

	text := fmt.Sprintf("%.0f fps | %d dropped | %d passes | %d fired",
		fps, dropped, snapshot.PassesCompleted, snapshot.FiringsTriggered)
	if snapshot.OCRDegraded {
		text += " | OCR UNAVAILABLE"
	}
	fyne.Do(func() { d.statsLabel.SetText(text) })
}

func (d *Dashboard) onRuleFired(e events.Event) {
	d.appendLog(fmt.Sprintf("rule %v fired on %q (price %v)",
		e.Data["rule_id"], e.Data["matched_text"], e.Data["price"]))

	// The ledger write is detached from the firing; give it a moment.
	go func() {
		time.Sleep(500 * time.Millisecond)
		d.reloadFirings()
	}()
}

func (d *Dashboard) reloadFirings() {
	if d.ledger == nil {
		return
	}
	entries, err := d.ledger.Recent(50)
	if err != nil {
		d.appendLog(fmt.Sprintf("failed to load firings: %v", err))
		return
	}
	fyne.Do(func() {
		d.firings = entries
		if d.firingsList != nil {
			d.firingsList.Refresh()
		}
	})
}

func (d *Dashboard) appendLog(line string) {
	stamped := time.Now().Format("15:04:05") + "  " + line
	fyne.Do(func() {
		d.logLines = append(d.logLines, stamped)
		if len(d.logLines) > maxLogLines {
			d.logLines = d.logLines[len(d.logLines)-maxLogLines:]
		}
		text := ""
		for _, l := range d.logLines {
			text += l + "\n"
		}
		d.logView.SetText(text)
	})
}
