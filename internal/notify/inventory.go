package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"jordanella.com/market-sniper-go/internal/logging"
)

// Inventory uploads fired-item records to the remote inventory endpoint.
// Best-effort with no retry; responses are only checked for status.
type Inventory struct {
	endpointURL string
	apiSecret   string
	client      *http.Client
	logger      *logging.Logger
}

// Upload is the inventory-upload payload for one fired action.
type Upload struct {
	Token     string  `json:"token"`
	Action    string  `json:"action"`
	Name      string  `json:"name"`
	Attribute string  `json:"attribute"`
	Data      string  `json:"data"` // account context
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
}

// NewInventory creates an inventory sink. An empty URL disables the sink.
func NewInventory(endpointURL, apiSecret string) *Inventory {
	return &Inventory{
		endpointURL: endpointURL,
		apiSecret:   apiSecret,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logging.NewLogger("inventory"),
	}
}

// Enabled reports whether an endpoint URL is configured.
func (i *Inventory) Enabled() bool {
	return i.endpointURL != ""
}

// UploadFiring posts one restock record for a fired rule.
func (i *Inventory) UploadFiring(name, attribute, account string, price float64, evidenceRef string) {
	if !i.Enabled() {
		return
	}

	payload := Upload{
		Token:     i.apiSecret,
		Action:    "restock",
		Name:      name,
		Attribute: attribute,
		Data:      account,
		Price:     price,
		ImageURL:  evidenceRef,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		i.logger.Error("failed to encode upload payload", err)
		return
	}

	resp, err := i.client.Post(i.endpointURL, "application/json", bytes.NewReader(body))
	if err != nil {
		i.logger.Error("inventory upload failed", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		i.logger.WarnWithContext("inventory upload rejected", map[string]interface{}{"status": resp.StatusCode})
	} else {
		i.logger.InfoWithContext("inventory upload accepted", map[string]interface{}{"name": name})
	}
}
