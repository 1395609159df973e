package deck

import (
	"sort"
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

// Less sorts in display order: by suit, then by play order
func (h Hand) Less(i, j int) bool {
	return h[i].DisplayLess(h[j])
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Sorted returns a copy of the hand in display order
func (h Hand) Sorted() Hand {
	h2 := h.Clone()
	sort.Sort(h2)
	return h2
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

// String returns the tokens separated by a space, e.g. "D3 H2"
func (h Hand) String() string {
	tokens := make([]string, len(h))
	for i, card := range h {
		tokens[i] = card.Token()
	}

	return strings.Join(tokens, " ")
}

// HandFromString parses a space or comma separated list of tokens.
// It panics on a bad token and is meant for tests.
func HandFromString(s string) Hand {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})

	h := make(Hand, len(fields))
	for i, f := range fields {
		h[i] = MustCardFromToken(f)
	}

	return h
}
