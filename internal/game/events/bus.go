package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers events synchronously on the publishing goroutine.
// Subscribers are called in subscription order, then the handlers
// registered with On. Delivery works on a snapshot, so a handler may
// subscribe or unsubscribe without deadlocking.
type EventBus struct {
	mu        sync.Mutex
	subs      []Subscriber
	handlers  map[string][]Handler
	published map[string]int
	logger    zerolog.Logger
}

func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		handlers:  make(map[string][]Handler),
		published: make(map[string]int),
		logger:    logger.With().Str("component", "EventBus").Logger(),
	}
}

// Subscribe adds s. A subscriber with the same ID is replaced in place.
func (b *EventBus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, existing := range b.subs {
		if existing.ID() == s.ID() {
			b.subs[i] = s
			return
		}
	}
	b.subs = append(b.subs, s)
	b.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber added")
}

// Unsubscribe removes the subscriber with id and reports whether it existed
func (b *EventBus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ID() == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// On registers h for one event type
func (b *EventBus) On(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish delivers e. A panicking receiver is logged and skipped.
func (b *EventBus) Publish(e Event) {
	eventType := e.Type()

	b.mu.Lock()
	b.published[eventType]++
	subs := make([]Subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if s.InterestedIn(eventType) {
			subs = append(subs, s)
		}
	}
	handlers := append([]Handler(nil), b.handlers[eventType]...)
	b.mu.Unlock()

	for _, s := range subs {
		b.deliver(e, s.ID(), s.HandleEvent)
	}
	for _, h := range handlers {
		b.deliver(e, "", h)
	}
}

func (b *EventBus) deliver(e Event, receiver string, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event_type", e.Type()).
				Str("subscriber_id", receiver).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	h(e)
}

// Published counts the events of eventType seen so far
func (b *EventBus) Published(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published[eventType]
}

func (b *EventBus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *EventBus) HandlerCount(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[eventType])
}
