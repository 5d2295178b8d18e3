package events

// PublisherFunc lets a plain function receive simulator events
type PublisherFunc func(Event)

func (f PublisherFunc) Publish(e Event) { f(e) }

// NopPublisher drops every event
var NopPublisher Publisher = PublisherFunc(func(Event) {})

var _ Publisher = (*EventBus)(nil)
