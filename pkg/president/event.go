package president

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"president-sim/pkg/deck"
)

// EventKind identifies what happened
type EventKind string

// event kinds, in the order they can first appear in a game
const (
	EventDiscard  EventKind = "discard"
	EventRoster   EventKind = "roster"
	EventHand     EventKind = "hand"
	EventOpen     EventKind = "open"
	EventPlay     EventKind = "play"
	EventPass     EventKind = "pass"
	EventWinner   EventKind = "winner"
	EventComplete EventKind = "complete"
	EventDrop     EventKind = "drop"
	EventLoser    EventKind = "loser"
)

// Identity names a worker
type Identity struct {
	Seat int    `json:"seat"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label is how a seat is referred to in messages. Seats are counted from 1.
func (i Identity) Label() string {
	return fmt.Sprintf("player %d", i.Seat+1)
}

// Event is a single announcement from the coordinator
// Seat is -1 when the event is not about a single player.
type Event struct {
	UUID    string      `json:"uuid"`
	Kind    EventKind   `json:"kind"`
	Seat    int         `json:"seat"`
	Name    string      `json:"name,omitempty"`
	Cards   []deck.Card `json:"cards,omitempty"`
	Roster  []Identity  `json:"roster,omitempty"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

// Reporter receives events
// Report is only ever called from the coordinator's goroutine, in order.
type Reporter interface {
	Report(event *Event)
}

// ReporterFunc adapts a function to a Reporter
type ReporterFunc func(event *Event)

// Report calls f(event)
func (f ReporterFunc) Report(event *Event) {
	f(event)
}

type discardReporter struct{}

func (discardReporter) Report(*Event) {}

func newEvent(kind EventKind, format string, a ...interface{}) *Event {
	return &Event{
		UUID:    uuid.New().String(),
		Kind:    kind,
		Seat:    -1,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

func newSeatEvent(kind EventKind, who Identity, cards []deck.Card, format string, a ...interface{}) *Event {
	e := newEvent(kind, format, a...)
	e.Seat = who.Seat
	e.Name = who.Name
	e.Cards = cards
	return e
}
