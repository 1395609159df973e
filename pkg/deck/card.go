package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidCard is returned when a token cannot be parsed as a card
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
)

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an individual playing card. Cards are compared by value.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// Opener is the Diamond-3. Whoever holds it must play it first.
var Opener = Card{Rank: 3, Suit: Diamonds}

// PlayOrder returns the strength of a rank for play legality.
// 3 is the weakest (1) and 2 the strongest (13). Unknown ranks return 0.
func PlayOrder(rank int) int {
	switch {
	case rank == 2:
		return 13
	case rank >= 3 && rank <= Ace:
		return rank - 2
	default:
		return 0
	}
}

// SuitOrder returns the display position of a suit: diamonds, clubs, hearts, spades.
// Unknown suits sort last.
func SuitOrder(suit Suit) int {
	switch suit {
	case Diamonds:
		return 0
	case Clubs:
		return 1
	case Hearts:
		return 2
	case Spades:
		return 3
	default:
		return 4
	}
}

// Beats returns true if c is strictly stronger than other in play order
func (c Card) Beats(other Card) bool {
	return PlayOrder(c.Rank) > PlayOrder(other.Rank)
}

// DisplayLess returns true if c is presented before other in a hand
func (c Card) DisplayLess(other Card) bool {
	if s1, s2 := SuitOrder(c.Suit), SuitOrder(other.Suit); s1 != s2 {
		return s1 < s2
	}

	return PlayOrder(c.Rank) < PlayOrder(other.Rank)
}

// Token returns the two character form of the card, e.g. "D3" or "ST"
func (c Card) Token() string {
	return suitLetter(c.Suit) + rankLetter(c.Rank)
}

func (c Card) String() string {
	return c.Token()
}

// Symbol returns a human friendly form of the card, e.g. "3♢"
func (c Card) Symbol() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return rank + suit
}

// MarshalText encodes the card as its token
func (c Card) MarshalText() ([]byte, error) {
	if PlayOrder(c.Rank) == 0 || SuitOrder(c.Suit) > 3 {
		return nil, fmt.Errorf("%w: %d of %s", ErrInvalidCard, c.Rank, c.Suit)
	}

	return []byte(c.Token()), nil
}

// UnmarshalText decodes a card token
func (c *Card) UnmarshalText(b []byte) error {
	card, err := CardFromToken(string(b))
	if err != nil {
		return err
	}

	*c = card
	return nil
}

var tokenRx = regexp.MustCompile(`^([SHCD])([2-9TJQKA])\z`)

// CardFromToken parses a two character token: a suit letter in [SHCD] followed
// by a rank letter in [23456789TJQKA]
func CardFromToken(s string) (Card, error) {
	match := tokenRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch match[1] {
	case "S":
		suit = Spades
	case "H":
		suit = Hearts
	case "C":
		suit = Clubs
	default:
		suit = Diamonds
	}

	var rank int
	switch match[2] {
	case "T":
		rank = 10
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		// should never fail due to the regexp
		rank, _ = strconv.Atoi(match[2])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustCardFromToken is like CardFromToken but panics on error.
// Intended for tests and literals.
func MustCardFromToken(s string) Card {
	card, err := CardFromToken(s)
	if err != nil {
		panic(err)
	}

	return card
}

func suitLetter(s Suit) string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	default:
		return "?"
	}
}

func rankLetter(rank int) string {
	switch rank {
	case 10:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}

	if rank >= 2 && rank <= 9 {
		return strconv.Itoa(rank)
	}

	return "?"
}
