package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jordanella.com/market-sniper-go/internal/capture"
	"jordanella.com/market-sniper-go/internal/config"
	"jordanella.com/market-sniper-go/internal/engine"
	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/input"
	"jordanella.com/market-sniper-go/internal/ledger"
	"jordanella.com/market-sniper-go/internal/logging"
	"jordanella.com/market-sniper-go/internal/ocr"
)

func main() {
	settingsPath := flag.String("settings", "Settings.ini", "path to settings file")
	listWindows := flag.Bool("list-windows", false, "list capture-target window titles and exit")
	flag.Parse()

	if *listWindows {
		titles := capture.ListWindows()
		if len(titles) == 0 {
			fmt.Println("no windows found (window listing requires Windows)")
			return
		}
		for _, title := range titles {
			fmt.Println(title)
		}
		return
	}

	logger := logging.NewLogger("main")
	cfg := config.Load(*settingsPath)
	logger.InfoWithContext("configuration loaded", map[string]interface{}{
		"rules": len(cfg.Rules),
		"fps":   cfg.CaptureFPS,
	})

	bus := events.NewEventBus(256)
	defer bus.Stop()

	journal, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		logger.Error("ledger unavailable, firings will not be recorded", err)
		journal = nil
	} else {
		defer journal.Close()
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

	e.Start()
	logger.Info("engine running, press Ctrl+C to stop")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	e.Stop()
}
