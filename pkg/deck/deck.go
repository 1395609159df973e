package deck

import (
	"bufio"
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"president-sim/internal/rng"
)

// MaxCards is the size of a full deck
const MaxCards = 52

// ErrTooManyCards is returned when the input holds more cards than a deck can
var ErrTooManyCards = errors.New("too many cards in input")

// Deck is a validated set of distinct cards, in the order they were read
type Deck struct {
	Cards []Card `json:"cards"`

	// Discarded are duplicates dropped while reading, in input order
	Discarded []Card `json:"discarded"`
}

// New returns a full, unshuffled deck
func New() *Deck {
	cards := make([]Card, 0, MaxCards)
	for _, suit := range []Suit{Diamonds, Clubs, Hearts, Spades} {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return &Deck{Cards: cards}
}

// FromCards builds a deck from cards, discarding duplicates the same way Read does
func FromCards(cards []Card) (*Deck, error) {
	d := &Deck{Cards: make([]Card, 0, len(cards))}
	seen := make(map[Card]bool)
	for _, card := range cards {
		if len(d.Cards) >= MaxCards {
			return nil, ErrTooManyCards
		}

		if seen[card] {
			d.Discarded = append(d.Discarded, card)
			continue
		}

		seen[card] = true
		d.Cards = append(d.Cards, card)
	}

	return d, nil
}

// Read parses whitespace separated tokens until the end of input.
// Tokens that are not cards are skipped silently. Repeated cards are kept
// once and recorded in Discarded. Any token read after the deck is full is an
// ErrTooManyCards.
func Read(r io.Reader) (*Deck, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	d := &Deck{Cards: make([]Card, 0, MaxCards)}
	seen := make(map[Card]bool)
	for scanner.Scan() {
		if len(d.Cards) >= MaxCards {
			return nil, ErrTooManyCards
		}

		card, err := CardFromToken(scanner.Text())
		if err != nil {
			continue
		}

		if seen[card] {
			d.Discarded = append(d.Discarded, card)
			continue
		}

		seen[card] = true
		d.Cards = append(d.Cards, card)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read deck: %w", err)
	}

	return d, nil
}

// Shuffle shuffles the cards in place with the supplied generator
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal distributes the cards round-robin: hand i gets positions i, i+n, i+2n, ...
// Cards keep their deck order within a hand.
func (d *Deck) Deal(n int) []Hand {
	hands := make([]Hand, n)
	for i := range hands {
		hands[i] = make(Hand, 0, len(d.Cards)/n+1)
	}

	for i, card := range d.Cards {
		hands[i%n] = append(hands[i%n], card)
	}

	return hands
}

// IndexOf returns the position of the card in the deck, or -1
func (d *Deck) IndexOf(card Card) int {
	for i, c := range d.Cards {
		if c == card {
			return i
		}
	}

	return -1
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.Token()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
