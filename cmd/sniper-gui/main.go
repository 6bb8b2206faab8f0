package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2/app"

	"jordanella.com/market-sniper-go/internal/capture"
	"jordanella.com/market-sniper-go/internal/config"
	"jordanella.com/market-sniper-go/internal/engine"
	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/gui"
	"jordanella.com/market-sniper-go/internal/input"
	"jordanella.com/market-sniper-go/internal/ledger"
	"jordanella.com/market-sniper-go/internal/ocr"
)

func main() {
	settingsPath := flag.String("settings", "Settings.ini", "path to settings file")
	flag.Parse()

	cfg := config.Load(*settingsPath)

	bus := events.NewEventBus(256)

	journal, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		log.Printf("Warning: ledger unavailable: %v", err)
		journal = nil
	}

	e := engine.New(engine.Options{
		Config:  cfg,
		Capture: capture.NewDefault(),
		Input:   input.NewRobotgo(),
		Recognizer: func() (ocr.Provider, error) {
			return ocr.NewTesseract(cfg.OCRLanguage)
		},
		Bus:    bus,
		Ledger: journal,
	})

	myApp := app.NewWithID("com.jordanella.market-sniper-go")
	myApp.Settings().SetTheme(&gui.SniperTheme{})

	mainWindow := myApp.NewWindow("Market Sniper")
	mainWindow.Resize(gui.DefaultWindowSize)

	dashboard := gui.NewDashboard(e, bus, journal)
	mainWindow.SetContent(dashboard.Build())
	mainWindow.SetMaster()
	mainWindow.ShowAndRun()

	// Cleanup on exit
	dashboard.Shutdown()
	e.Stop()
	bus.Stop()
	if journal != nil {
		journal.Close()
	}
}
