package config

import (
	"time"

	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/rules"
)

// Config holds all engine configuration, loaded once at startup and never
// mutated while the engine runs.
type Config struct {
	// Capture
	TargetWindow   string
	CaptureRegion  frame.Region
	CaptureFPS     int
	PreviewEnabled bool

	// Analysis
	ROI         frame.Region
	OCRLanguage string

	// Actuation
	ActionKey    string
	HoldDuration time.Duration

	// Rules
	Rules []rules.Rule

	// Notification
	DiscordWebhookURL string
	InventoryURL      string
	APISecret         string
	AccountContext    string
	NotifyOnSuccess   bool
	NotifyOnError     bool

	// Persistence
	EvidenceDir string
	LedgerPath  string

	// Debug
	VerboseLogging bool
}

// NewDefaultConfig returns the documented fallback configuration used when
// configuration files are missing or unparseable.
func NewDefaultConfig() *Config {
	return &Config{
		TargetWindow:   "",
		CaptureRegion:  frame.Region{X: 0, Y: 0, Width: 1920, Height: 1080},
		CaptureFPS:     45,
		PreviewEnabled: true,

		ROI:         frame.Region{X: 320, Y: 0, Width: 1280, Height: 1080},
		OCRLanguage: "eng",

		ActionKey:    "e",
		HoldDuration: 1200 * time.Millisecond,

		Rules: nil,

		NotifyOnSuccess: true,
		NotifyOnError:   true,
		AccountContext:  "Unknown",

		EvidenceDir: "captured_evidence",
		LedgerPath:  "data/sniper.db",
	}
}
