package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInventoryUploadPayload(t *testing.T) {
	var got Upload
	received := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		close(received)
	}))
	defer server.Close()

	sink := NewInventory(server.URL, "secret-token")
	sink.UploadFiring("Excalibur Sword", "Fire", "trader-01", 1250, "/evidence/a.png")

	select {
	case <-received:
	default:
		t.Fatal("upload was not received")
	}

	if got.Token != "secret-token" {
		t.Errorf("Token = %q", got.Token)
	}
	if got.Action != "restock" {
		t.Errorf("Action = %q, want restock", got.Action)
	}
	if got.Name != "Excalibur Sword" || got.Attribute != "Fire" {
		t.Errorf("Name/Attribute = %q/%q", got.Name, got.Attribute)
	}
	if got.Data != "trader-01" || got.Price != 1250 {
		t.Errorf("Data/Price = %q/%v", got.Data, got.Price)
	}
	if got.ImageURL != "/evidence/a.png" {
		t.Errorf("ImageURL = %q", got.ImageURL)
	}
}

func TestInventoryDisabledWithoutURL(t *testing.T) {
	sink := NewInventory("", "secret")
	if sink.Enabled() {
		t.Error("sink with empty URL must be disabled")
	}
	// Must be a no-op, not a panic or a network attempt.
	sink.UploadFiring("item", "", "", 0, "")
}

func TestInventoryFailureIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := NewInventory(server.URL, "")
	sink.UploadFiring("item", "", "", 0, "") // logged only, no error surfaces
}

func TestDiscordNotifyFiring(t *testing.T) {
	var payload map[string]interface{}
	received := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		close(received)
	}))
	defer server.Close()

	sink := NewDiscord(server.URL)
	sink.NotifyFiring("Excalibur", "fire-swords", 1250)

	select {
	case <-received:
	default:
		t.Fatal("webhook was not received")
	}

	embeds, ok := payload["embeds"].([]interface{})
	if !ok || len(embeds) != 1 {
		t.Fatalf("embeds = %v, want exactly one", payload["embeds"])
	}
	embed := embeds[0].(map[string]interface{})
	description, _ := embed["description"].(string)
	if description == "" {
		t.Error("embed has no description")
	}
}

func TestDiscordNotifyError(t *testing.T) {
	var payload map[string]interface{}
	received := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		close(received)
	}))
	defer server.Close()

	sink := NewDiscord(server.URL)
	sink.NotifyError("recognition unavailable")

	select {
	case <-received:
	default:
		t.Fatal("webhook was not received")
	}

	embeds, ok := payload["embeds"].([]interface{})
	if !ok || len(embeds) != 1 {
		t.Fatalf("embeds = %v, want exactly one", payload["embeds"])
	}
	embed := embeds[0].(map[string]interface{})
	if embed["title"] != "Engine Error" {
		t.Errorf("embed title = %v", embed["title"])
	}
	description, _ := embed["description"].(string)
	if description != "recognition unavailable" {
		t.Errorf("embed description = %q", description)
	}
}

func TestDiscordDisabledWithoutURL(t *testing.T) {
	sink := NewDiscord("")
	if sink.Enabled() {
		t.Error("sink with empty URL must be disabled")
	}
	sink.NotifyFiring("item", "rule", 0)
}
