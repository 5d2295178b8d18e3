package events

import "time"

// Event is something a Simulator reports while an episode runs
type Event interface {
	Type() string
	Timestamp() time.Time
	// GameID identifies the simulator that emitted the event
	GameID() string
	Episode() int
}

// Header carries the fields every simulator event shares
type Header struct {
	Kind      string    `json:"type"`
	At        time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
	EpisodeNo int       `json:"episode"`
	Tick      int       `json:"tick"`
}

func newHeader(kind, gameID string, episode, tick int) Header {
	return Header{Kind: kind, At: time.Now(), Game: gameID, EpisodeNo: episode, Tick: tick}
}

func (h Header) Type() string         { return h.Kind }
func (h Header) Timestamp() time.Time { return h.At }
func (h Header) GameID() string       { return h.Game }
func (h Header) Episode() int         { return h.EpisodeNo }

// Handler processes one event
type Handler func(Event)

// Subscriber receives the event types it is interested in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher accepts events from a Simulator
type Publisher interface {
	Publish(Event)
}
