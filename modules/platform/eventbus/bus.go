package eventbus

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the type of event
type EventType string

const (
	// View events, published whenever a feature state cell changes
	EventAssetUpdated      EventType = "asset_updated"
	EventChildrenUpdated   EventType = "children_updated"
	EventChangelogUpdated  EventType = "changelog_updated"
	EventAssetsListUpdated EventType = "assets_list_updated"
	EventAclUpdated        EventType = "acl_updated"
	EventDashboardUpdated  EventType = "dashboard_updated"
	EventBadgeUpdated      EventType = "badge_updated"

	// Notification events
	EventNotification EventType = "notification"
)

// Event represents an event in the system
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewEvent creates a new event
func NewEvent(eventType EventType) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      make(map[string]interface{}),
	}
}

// WithSource sets the source
func (e *Event) WithSource(source string) *Event {
	e.Source = source
	return e
}

// WithData adds data to the event
func (e *Event) WithData(key string, value interface{}) *Event {
	if e.Data == nil {
		e.Data = make(map[string]interface{})
	}
	e.Data[key] = value
	return e
}

// JSON returns the event as JSON
func (e *Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Subscriber is a function that handles events
type Subscriber func(event *Event)

// Subscription represents a subscription to events. Events are queued
// and handed to the handler one at a time, in publish order.
type Subscription struct {
	id         string
	eventTypes []EventType // nil means all events
	handler    Subscriber
	queue      chan *Event
	done       chan struct{}
}

// queueSize bounds the events waiting for one handler before Publish blocks
const queueSize = 256

func (s *Subscription) run() {
	for {
		select {
		case event := <-s.queue:
			s.handler(event)
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) enqueue(event *Event) {
	select {
	case s.queue <- event:
	case <-s.done:
	}
}

// Bus fans events out to subscribers. Each subscriber has its own queue
// drained by one goroutine, so a slow websocket client never blocks other
// subscribers and never sees events out of order.
type Bus struct {
	mu           sync.RWMutex
	subscribers  map[string]*Subscription
	eventHistory []*Event
	historyLimit int
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		subscribers:  make(map[string]*Subscription),
		eventHistory: make([]*Event, 0),
		historyLimit: 1000,
	}
}

// Subscribe registers a subscriber for specific event types
// Pass nil for eventTypes to subscribe to all events
func (b *Bus) Subscribe(eventTypes []EventType, handler Subscriber) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	sub := &Subscription{
		id:         id,
		eventTypes: eventTypes,
		handler:    handler,
		queue:      make(chan *Event, queueSize),
		done:       make(chan struct{}),
	}
	b.subscribers[id] = sub
	go sub.run()

	return id
}

// Unsubscribe removes a subscriber. Queued events not yet handled are dropped.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	sub, ok := b.subscribers[id]
	delete(b.subscribers, id)
	b.mu.Unlock()

	if ok {
		close(sub.done)
	}
}

// Publish publishes an event to all matching subscribers. Events published
// by one goroutine reach each subscriber in publish order.
func (b *Bus) Publish(event *Event) {
	if b == nil || event == nil {
		return
	}

	b.mu.Lock()
	subscribers := make([]*Subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subscribers = append(subscribers, sub)
	}
	b.eventHistory = append(b.eventHistory, event)
	if len(b.eventHistory) > b.historyLimit {
		b.eventHistory = b.eventHistory[1:]
	}
	b.mu.Unlock()

	for _, sub := range subscribers {
		if matchesSubscription(event, sub) {
			sub.enqueue(event)
		}
	}
}

// matchesSubscription checks if an event matches a subscription
func matchesSubscription(event *Event, sub *Subscription) bool {
	if sub.eventTypes == nil {
		return true
	}

	for _, et := range sub.eventTypes {
		if et == event.Type {
			return true
		}
	}
	return false
}

// GetHistory returns recent events
func (b *Bus) GetHistory(limit int) []*Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit <= 0 || limit > len(b.eventHistory) {
		limit = len(b.eventHistory)
	}

	start := len(b.eventHistory) - limit
	result := make([]*Event, limit)
	copy(result, b.eventHistory[start:])
	return result
}

// GetHistoryByType returns recent events of specific types, oldest first
func (b *Bus) GetHistoryByType(eventTypes []EventType, limit int) []*Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typeSet := make(map[EventType]bool)
	for _, et := range eventTypes {
		typeSet[et] = true
	}

	result := make([]*Event, 0)
	for i := len(b.eventHistory) - 1; i >= 0 && len(result) < limit; i-- {
		if typeSet[b.eventHistory[i].Type] {
			result = append(result, b.eventHistory[i])
		}
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result
}
