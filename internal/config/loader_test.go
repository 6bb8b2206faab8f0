package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMissingFilesFallsBackToDefaults(t *testing.T) {
	config := Load(filepath.Join(t.TempDir(), "nope.ini"))

	defaults := NewDefaultConfig()
	if config.CaptureFPS != defaults.CaptureFPS {
		t.Errorf("CaptureFPS = %d, want default %d", config.CaptureFPS, defaults.CaptureFPS)
	}
	if config.ActionKey != defaults.ActionKey {
		t.Errorf("ActionKey = %q, want default %q", config.ActionKey, defaults.ActionKey)
	}
	if config.HoldDuration != defaults.HoldDuration {
		t.Errorf("HoldDuration = %v, want default %v", config.HoldDuration, defaults.HoldDuration)
	}
	if len(config.Rules) != 0 {
		t.Errorf("Rules = %v, want empty", config.Rules)
	}
}

func TestLoadSettingsOverlay(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.yaml", `
rules:
  - id: fire-swords
    trigger_text: ["excalibur", "fire sword"]
    min_value: 100
    max_value: 2000
    target_attribute: fire
    cooldown: 3.5
  - id: ""
    trigger_text: ["orphan"]
  - id: no-triggers
`)
	settings := writeFile(t, dir, "Settings.ini", `
[Engine]
targetWindow = Market Window
captureFps = 30
actionKey = F
holdDuration = 0.8
roiX = 100
roiY = 50
roiWidth = 800
roiHeight = 600
rulesFile = `+rulesPath+`

[Notifications]
discordWebhookUrl = https://example.test/webhook
inventoryUrl = https://example.test/inventory
accountContext = trader-01
`)

	config := Load(settings)

	if config.TargetWindow != "Market Window" {
		t.Errorf("TargetWindow = %q", config.TargetWindow)
	}
	if config.CaptureFPS != 30 {
		t.Errorf("CaptureFPS = %d, want 30", config.CaptureFPS)
	}
	if config.ActionKey != "f" {
		t.Errorf("ActionKey = %q, want normalized f", config.ActionKey)
	}
	if config.HoldDuration != 800*time.Millisecond {
		t.Errorf("HoldDuration = %v, want 800ms", config.HoldDuration)
	}
	if config.ROI.X != 100 || config.ROI.Width != 800 {
		t.Errorf("ROI = %+v", config.ROI)
	}
	if config.AccountContext != "trader-01" {
		t.Errorf("AccountContext = %q", config.AccountContext)
	}

	if len(config.Rules) != 1 {
		t.Fatalf("loaded %d rules, want 1 (malformed rules skipped)", len(config.Rules))
	}
	rule := config.Rules[0]
	if rule.ID != "fire-swords" || len(rule.Triggers) != 2 {
		t.Errorf("rule = %+v", rule)
	}
	if rule.MinPrice == nil || *rule.MinPrice != 100 {
		t.Errorf("MinPrice = %v, want 100", rule.MinPrice)
	}
	if rule.MaxPrice == nil || *rule.MaxPrice != 2000 {
		t.Errorf("MaxPrice = %v, want 2000", rule.MaxPrice)
	}
	if rule.Cooldown != 3500*time.Millisecond {
		t.Errorf("Cooldown = %v, want 3.5s", rule.Cooldown)
	}
}

func TestLoadRulesUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.yaml", "rules: [ {unclosed")
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
