package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jordanella.com/market-sniper-go/internal/logging"
)

const (
	embedColorGreen = 5763719
	embedColorRed   = 15548997
)

// Discord posts human-readable embeds to a configured webhook.
// Best-effort: failures are logged, never retried.
type Discord struct {
	webhookURL string
	client     *http.Client
	logger     *logging.Logger
}

// NewDiscord creates a webhook sink. An empty URL disables the sink.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewLogger("discord"),
	}
}

// Enabled reports whether a webhook URL is configured.
func (d *Discord) Enabled() bool {
	return d.webhookURL != ""
}

// NotifyFiring posts an embed describing a fired rule.
func (d *Discord) NotifyFiring(item, ruleID string, price float64) {
	description := fmt.Sprintf("**SNIPED!**\nItem: %s\nRule: %s", item, ruleID)
	if price > 0 {
		description += fmt.Sprintf("\nPrice: %.0f", price)
	}

	payload := map[string]interface{}{
		"content": nil,
		"embeds": []map[string]interface{}{{
			"title":       "Item Secured",
			"description": description,
			"color":       embedColorGreen,
		}},
		"username": "Market Sniper",
	}
	d.post(payload)
}

// NotifyError posts an embed describing an engine fault.
func (d *Discord) NotifyError(message string) {
	payload := map[string]interface{}{
		"content": nil,
		"embeds": []map[string]interface{}{{
			"title":       "Engine Error",
			"description": message,
			"color":       embedColorRed,
		}},
		"username": "Market Sniper",
	}
	d.post(payload)
}

func (d *Discord) post(payload interface{}) {
	if !d.Enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Error("failed to encode webhook payload", err)
		return
	}

	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		d.logger.Error("webhook post failed", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d.logger.WarnWithContext("webhook rejected", map[string]interface{}{"status": resp.StatusCode})
	}
}
