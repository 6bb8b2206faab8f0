package events

import (
	"fmt"
	"sync"
	"time"
)

// subscription represents a single event subscription
type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// DefaultEventBus is the default implementation of EventBus
type DefaultEventBus struct {
	subscribers map[EventType][]subscription
	mu          sync.RWMutex
	nextSubID   SubscriptionID

	eventQueue chan Event
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewEventBus creates a new event bus with the specified queue size
func NewEventBus(bufferSize int) *DefaultEventBus {
	bus := &DefaultEventBus{
		subscribers: make(map[EventType][]subscription),
		eventQueue:  make(chan Event, bufferSize),
		stopCh:      make(chan struct{}),
		nextSubID:   1,
	}

	bus.wg.Add(1)
	go bus.processEvents()

	return bus
}

// Subscribe registers a handler for a specific event type
func (eb *DefaultEventBus) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subID := eb.nextSubID
	eb.nextSubID++

	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{
		id:      subID,
		handler: handler,
	})
	return subID
}

// Unsubscribe removes a subscription by ID
func (eb *DefaultEventBus) Unsubscribe(id SubscriptionID) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, subs := range eb.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				eb.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish queues an event for dispatch. Never blocks the caller: when the
// queue is full or the bus is stopped the event is dropped, matching the
// lossy-by-choice posture of the capture pipeline that feeds it.
func (eb *DefaultEventBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case eb.eventQueue <- event:
	case <-eb.stopCh:
	default:
	}
}

// Stop stops the event bus and drains remaining events
func (eb *DefaultEventBus) Stop() {
	close(eb.stopCh)
	eb.wg.Wait()
}

func (eb *DefaultEventBus) processEvents() {
	defer eb.wg.Done()

	for {
		select {
		case event := <-eb.eventQueue:
			eb.dispatch(event)

		case <-eb.stopCh:
			for {
				select {
				case event := <-eb.eventQueue:
					eb.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch sends an event to all registered handlers
func (eb *DefaultEventBus) dispatch(event Event) {
	eb.mu.RLock()
	subs := eb.subscribers[event.Type]
	handlers := make([]EventHandler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	eb.mu.RUnlock()

	for _, handler := range handlers {
		eb.safeHandlerCall(handler, event)
	}
}

// safeHandlerCall calls a handler with panic recovery
func (eb *DefaultEventBus) safeHandlerCall(handler EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[EventBus] Handler panic for event %v: %v\n", event.Type, r)
		}
	}()

	handler(event)
}
