// Package report turns game events into output
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"president-sim/pkg/deck"
	"president-sim/pkg/president"
)

// ErrUnknownFormat is returned by New for an unsupported format
var ErrUnknownFormat = errors.New("unknown report format")

// formats
const (
	FormatPlain  = "plain"
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// New returns a reporter writing format to w
func New(format string, w io.Writer) (president.Reporter, error) {
	switch strings.ToLower(format) {
	case "", FormatPlain:
		return NewPlain(w), nil
	case FormatPretty:
		return NewPretty(w), nil
	case FormatJSON:
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Plain writes one line of text per event
type Plain struct {
	w io.Writer
}

// NewPlain returns a plain text reporter
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

// Report writes the event's message
func (p *Plain) Report(e *president.Event) {
	if _, err := fmt.Fprintln(p.w, e.Message); err != nil {
		logrus.WithError(err).Error("could not write event")
	}
}

// JSON writes one JSON object per event
type JSON struct {
	enc *json.Encoder
}

// NewJSON returns a JSON lines reporter
func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

// Report encodes the event
func (j *JSON) Report(e *president.Event) {
	if err := j.enc.Encode(e); err != nil {
		logrus.WithError(err).Error("could not encode event")
	}
}

// Pretty writes styled output for a terminal
type Pretty struct {
	w io.Writer
}

// NewPretty returns a terminal reporter
func NewPretty(w io.Writer) *Pretty {
	return &Pretty{w: w}
}

// Report prints the event with a prefix matching its kind
func (p *Pretty) Report(e *president.Event) {
	who := fmt.Sprintf("Player %d (%s)", e.Seat+1, e.Name)

	var printer pterm.PrefixPrinter
	var text string
	switch e.Kind {
	case president.EventDiscard:
		printer, text = pterm.Warning, e.Message
	case president.EventRoster:
		names := make([]string, len(e.Roster))
		for i, id := range e.Roster {
			names[i] = fmt.Sprintf("%d. %s", id.Seat+1, id.Name)
		}
		printer, text = pterm.Info, "Players: "+strings.Join(names, ", ")
	case president.EventHand:
		printer, text = pterm.Info, fmt.Sprintf("%s holds %d cards: %s", who, len(e.Cards), symbols(e.Cards))
	case president.EventOpen:
		printer, text = pterm.Description, fmt.Sprintf("%s opens with %s", who, symbols(e.Cards))
	case president.EventPlay:
		printer, text = pterm.Description, fmt.Sprintf("%s plays %s", who, symbols(e.Cards))
	case president.EventPass:
		printer, text = pterm.Description, fmt.Sprintf("%s passes", who)
	case president.EventWinner:
		printer, text = pterm.Success, fmt.Sprintf("%s is the winner", who)
	case president.EventComplete:
		printer, text = pterm.Success, fmt.Sprintf("%s is out of cards", who)
	case president.EventDrop:
		printer, text = pterm.Warning, e.Message
	case president.EventLoser:
		printer, text = pterm.Error, fmt.Sprintf("%s is the loser", who)
	default:
		printer, text = pterm.Info, e.Message
	}

	printer.WithWriter(p.w).Println(text)
}

func symbols(cards []deck.Card) string {
	s := make([]string, len(cards))
	for i, card := range cards {
		s[i] = card.Symbol()
	}

	return strings.Join(s, " ")
}

// Recorder keeps every event in memory
type Recorder struct {
	lock   sync.Mutex
	events []*president.Event
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{events: make([]*president.Event, 0)}
}

// Report stores the event
func (r *Recorder) Report(e *president.Event) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.events = append(r.events, e)
}

// Events returns the recorded events in order
func (r *Recorder) Events() []*president.Event {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]*president.Event{}, r.events...)
}

// Messages returns the message of every recorded event
func (r *Recorder) Messages() []string {
	events := r.Events()
	messages := make([]string, len(events))
	for i, e := range events {
		messages[i] = e.Message
	}

	return messages
}

// Kinds returns the kind of every recorded event
func (r *Recorder) Kinds() []president.EventKind {
	events := r.Events()
	kinds := make([]president.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}

	return kinds
}

// Multi sends every event to each reporter in turn
type Multi []president.Reporter

// Report forwards the event
func (m Multi) Report(e *president.Event) {
	for _, r := range m {
		r.Report(e)
	}
}
