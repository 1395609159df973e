package president

import (
	"errors"
	"fmt"
)

// ErrGameAlreadyStarted is returned when Run is called more than once
var ErrGameAlreadyStarted = errors.New("game has already started")

// ErrUnexpectedMessage is returned by a worker that receives a message it cannot act on
var ErrUnexpectedMessage = errors.New("unexpected message")

// ErrUnexpectedReply is the reason a worker is dropped after replying out of protocol
var ErrUnexpectedReply = errors.New("unexpected reply")

// ErrUnknownTransport is returned for a transport name that is not supported
var ErrUnknownTransport = errors.New("unknown transport")

// errStopped ends a worker whose connection went away mid-reply
var errStopped = errors.New("worker stopped")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected 1–%d players, got %d", p.Max, p.Got)
}
