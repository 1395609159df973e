package protocol

import (
	"errors"
	"fmt"

	"president-sim/pkg/deck"
)

// ErrUnknownMessage is returned when a token is not a valid message in its direction
var ErrUnknownMessage = errors.New("unknown message")

// Kind identifies a message variant
type Kind int

// message kinds
const (
	// sent by the coordinator
	KindAny Kind = iota
	KindBeat
	KindDone

	// sent by a worker
	KindPlay
	KindPass
	KindCompletion
)

// Direction is the way a message travels
type Direction int

// directions
const (
	// Downstream messages travel from the coordinator to a worker
	Downstream Direction = iota
	// Upstream messages travel from a worker to the coordinator
	Upstream
)

// wire tokens
const (
	tokenAny        = "any"
	tokenDone       = "done"
	tokenPass       = "pass"
	tokenCompletion = "completion"
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBeat:
		return "beat"
	case KindDone:
		return "done"
	case KindPlay:
		return "play"
	case KindPass:
		return "pass"
	case KindCompletion:
		return "completion"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Direction returns which way a message of this kind travels
func (k Kind) Direction() Direction {
	if k >= KindPlay {
		return Upstream
	}

	return Downstream
}

// Message is a single exchange between the coordinator and a worker.
// Card is only meaningful for KindBeat and KindPlay.
type Message struct {
	Kind Kind
	Card deck.Card
}

// Any tells a worker that any card may be played
func Any() Message {
	return Message{Kind: KindAny}
}

// Beat tells a worker it must play a card stronger than card
func Beat(card deck.Card) Message {
	return Message{Kind: KindBeat, Card: card}
}

// Done tells a worker to stop
func Done() Message {
	return Message{Kind: KindDone}
}

// Play is a worker playing card
func Play(card deck.Card) Message {
	return Message{Kind: KindPlay, Card: card}
}

// Pass is a worker declining to play
func Pass() Message {
	return Message{Kind: KindPass}
}

// Completion is a worker announcing its hand is empty
func Completion() Message {
	return Message{Kind: KindCompletion}
}

func (m Message) String() string {
	return Encode(m)
}

// Encode returns the wire token for the message: "any", "done", "pass",
// "completion", or the two character card token for Beat and Play
func Encode(m Message) string {
	switch m.Kind {
	case KindAny:
		return tokenAny
	case KindDone:
		return tokenDone
	case KindPass:
		return tokenPass
	case KindCompletion:
		return tokenCompletion
	default:
		return m.Card.Token()
	}
}

// Decode parses a wire token. A card token decodes to Beat when travelling
// downstream and to Play when travelling upstream.
func Decode(token string, dir Direction) (Message, error) {
	switch dir {
	case Downstream:
		switch token {
		case tokenAny:
			return Any(), nil
		case tokenDone:
			return Done(), nil
		}
	case Upstream:
		switch token {
		case tokenPass:
			return Pass(), nil
		case tokenCompletion:
			return Completion(), nil
		}
	}

	card, err := deck.CardFromToken(token)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownMessage, token)
	}

	if dir == Upstream {
		return Play(card), nil
	}

	return Beat(card), nil
}
