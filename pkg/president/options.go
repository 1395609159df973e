package president

import (
	"fmt"
	"time"

	"president-sim/internal/rng"
)

// Transport selects how the coordinator and workers are connected
type Transport string

// transports
const (
	// TransportChan connects with in-process channels
	TransportChan Transport = "chan"
	// TransportPipe connects with OS pipes carrying NUL-terminated tokens
	TransportPipe Transport = "pipe"
)

// ParseTransport validates a transport name. An empty name is TransportChan.
func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case "", TransportChan:
		return TransportChan, nil
	case TransportPipe:
		return TransportPipe, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTransport, s)
	}
}

// DefaultMaxPlayers is the player limit when none is configured
const DefaultMaxPlayers = 10

// Options are options for creating a new game
type Options struct {
	MaxPlayers int

	// TurnTimeout bounds each turn's exchange. Zero waits forever.
	TurnTimeout time.Duration

	Transport Transport

	// Reporter receives every event in order. Nil discards events.
	Reporter Reporter

	// Names picks the worker nicknames. Nil uses crypto/rand.
	Names rng.Generator
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MaxPlayers: DefaultMaxPlayers,
		Transport:  TransportChan,
	}
}
