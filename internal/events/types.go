package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	// Engine lifecycle events
	EventTypeEngineStarted EventType = "engine.started"
	EventTypeEngineStopped EventType = "engine.stopped"

	// Capture events
	EventTypeFramePreview EventType = "capture.frame_preview"
	EventTypeCaptureStats EventType = "capture.stats"

	// Analysis events
	EventTypeTokensRecognized EventType = "analysis.tokens_recognized"
	EventTypeRuleFired        EventType = "analysis.rule_fired"

	// Error events
	EventTypeError EventType = "error"
)

// Event represents a system event with metadata
type Event struct {
	Type      EventType              // Type of event
	Source    string                 // Component that emitted the event
	Timestamp time.Time              // When the event occurred
	Data      map[string]interface{} // Event-specific data
}

// EventHandler is a function that processes an event
type EventHandler func(Event)

// SubscriptionID uniquely identifies a subscription
type SubscriptionID int64

// EventBus defines the interface for event pub/sub
type EventBus interface {
	Subscribe(eventType EventType, handler EventHandler) SubscriptionID
	Unsubscribe(id SubscriptionID)
	Publish(event Event)
	Stop()
}

// NewFramePreviewEvent carries a downsampled JPEG preview of the latest
// captured frame.
func NewFramePreviewEvent(jpeg []byte, width, height int) Event {
	return Event{
		Type:      EventTypeFramePreview,
		Source:    "capture",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"jpeg":   jpeg,
			"width":  width,
			"height": height,
		},
	}
}

// NewCaptureStatsEvent reports the capture loop heartbeat.
func NewCaptureStatsEvent(fps float64, dropped uint64) Event {
	return Event{
		Type:      EventTypeCaptureStats,
		Source:    "capture",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"fps":     fps,
			"dropped": dropped,
		},
	}
}

// NewTokensRecognizedEvent reports how many tokens one recognition pass
// produced.
func NewTokensRecognizedEvent(count int) Event {
	return Event{
		Type:      EventTypeTokensRecognized,
		Source:    "brain",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"count": count,
		},
	}
}

// NewRuleFiredEvent reports a rule firing with its derived fields.
func NewRuleFiredEvent(ruleID, matchedText, attribute string, price float64) Event {
	return Event{
		Type:      EventTypeRuleFired,
		Source:    "brain",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"rule_id":      ruleID,
			"matched_text": matchedText,
			"attribute":    attribute,
			"price":        price,
		},
	}
}

// NewErrorEvent reports a transient component failure.
func NewErrorEvent(source string, err error) Event {
	return Event{
		Type:      EventTypeError,
		Source:    source,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"error": err.Error(),
		},
	}
}
