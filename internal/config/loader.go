package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/input"
	"jordanella.com/market-sniper-go/internal/logging"
	"jordanella.com/market-sniper-go/internal/rules"
)

var logger = logging.NewLogger("config")

// Load reads Settings.ini and the rule document it references. Any file
// that is missing or unparseable falls back to defaults rather than
// failing startup; the degradation is logged.
func Load(settingsPath string) *Config {
	config := NewDefaultConfig()

	rulesPath := "rules.yaml"
	if err := applySettings(config, settingsPath, &rulesPath); err != nil {
		logger.Warn(fmt.Sprintf("using default settings: %v", err))
	}

	loaded, err := LoadRules(rulesPath)
	if err != nil {
		logger.Warn(fmt.Sprintf("starting with empty rule set: %v", err))
	} else {
		config.Rules = loaded
	}

	return config
}

// applySettings overlays Settings.ini values onto the defaults.
func applySettings(config *Config, path string, rulesPath *string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load settings file: %w", err)
	}

	section := cfg.Section("Engine")
	config.TargetWindow = section.Key("targetWindow").MustString(config.TargetWindow)
	config.CaptureFPS = section.Key("captureFps").MustInt(config.CaptureFPS)
	config.PreviewEnabled = section.Key("previewEnabled").MustBool(config.PreviewEnabled)
	config.ActionKey = input.ParseKey(section.Key("actionKey").MustString(config.ActionKey))
	config.OCRLanguage = section.Key("ocrLanguage").MustString(config.OCRLanguage)
	config.VerboseLogging = section.Key("debugMode").MustBool(false)

	holdSeconds := section.Key("holdDuration").MustFloat64(config.HoldDuration.Seconds())
	if holdSeconds > 0 {
		config.HoldDuration = time.Duration(holdSeconds * float64(time.Second))
	}

	config.CaptureRegion = regionFromKeys(section, "capture", config.CaptureRegion)
	config.ROI = regionFromKeys(section, "roi", config.ROI)

	*rulesPath = section.Key("rulesFile").MustString(*rulesPath)

	notify := cfg.Section("Notifications")
	config.DiscordWebhookURL = notify.Key("discordWebhookUrl").MustString("")
	config.InventoryURL = notify.Key("inventoryUrl").MustString("")
	config.APISecret = notify.Key("apiSecret").MustString("")
	config.AccountContext = notify.Key("accountContext").MustString(config.AccountContext)
	config.NotifyOnSuccess = notify.Key("notifyOnSuccess").MustBool(config.NotifyOnSuccess)
	config.NotifyOnError = notify.Key("notifyOnError").MustBool(config.NotifyOnError)

	storage := cfg.Section("Storage")
	config.EvidenceDir = storage.Key("evidenceDir").MustString(config.EvidenceDir)
	config.LedgerPath = storage.Key("ledgerPath").MustString(config.LedgerPath)

	return nil
}

func regionFromKeys(section *ini.Section, prefix string, fallback frame.Region) frame.Region {
	region := frame.Region{
		X:      section.Key(prefix + "X").MustInt(fallback.X),
		Y:      section.Key(prefix + "Y").MustInt(fallback.Y),
		Width:  section.Key(prefix + "Width").MustInt(fallback.Width),
		Height: section.Key(prefix + "Height").MustInt(fallback.Height),
	}
	if region.Width <= 0 || region.Height <= 0 {
		return fallback
	}
	return region
}

// ruleSpec is the YAML shape of one configured rule.
type ruleSpec struct {
	ID              string   `yaml:"id"`
	TriggerText     []string `yaml:"trigger_text"`
	MinValue        *float64 `yaml:"min_value"`
	MaxValue        *float64 `yaml:"max_value"`
	TargetAttribute string   `yaml:"target_attribute"`
	Cooldown        float64  `yaml:"cooldown"`
}

type ruleDocument struct {
	Rules []ruleSpec `yaml:"rules"`
}

// LoadRules reads the rule list from a YAML document. Rules without an id
// or any trigger text are skipped with a warning.
func LoadRules(path string) ([]rules.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var doc ruleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	loaded := make([]rules.Rule, 0, len(doc.Rules))
	for _, spec := range doc.Rules {
		if spec.ID == "" || len(spec.TriggerText) == 0 {
			logger.WarnWithContext("skipping malformed rule", map[string]interface{}{"id": spec.ID})
			continue
		}
		loaded = append(loaded, rules.Rule{
			ID:        spec.ID,
			Triggers:  spec.TriggerText,
			MinPrice:  spec.MinValue,
			MaxPrice:  spec.MaxValue,
			Attribute: spec.TargetAttribute,
			Cooldown:  time.Duration(spec.Cooldown * float64(time.Second)),
		})
	}
	return loaded, nil
}
