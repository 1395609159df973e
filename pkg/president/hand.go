package president

import (
	"president-sim/pkg/deck"
)

// Hint is what the table allows the next player to play
type Hint struct {
	beat bool
	card deck.Card
}

// HintAny places no restriction on the next play
var HintAny = Hint{}

// HintBeat requires a card strictly stronger than card
func HintBeat(card deck.Card) Hint {
	return Hint{beat: true, card: card}
}

// IsAny returns true if any card may be played
func (h Hint) IsAny() bool {
	return !h.beat
}

// Card returns the card to beat. It is only meaningful when IsAny is false.
func (h Hint) Card() deck.Card {
	return h.card
}

func (h Hint) String() string {
	if h.beat {
		return "beat " + h.card.Token()
	}

	return "any"
}

// Hand is a player's private set of cards
// A Hand is owned by exactly one Worker and must not be shared.
type Hand struct {
	cards deck.Hand

	// hasPlayedOpener is only about this hand's own history
	hasPlayedOpener bool
}

// NewHand returns a hand holding a copy of cards
func NewHand(cards deck.Hand) *Hand {
	return &Hand{cards: cards.Clone()}
}

// SelectPlay picks a card for the hint and removes it from the hand.
// If the hand still holds the opener, the opener is played whatever the hint.
// With HintAny the weakest card is played, otherwise the weakest card that beats
// the hint's card. False is returned when there is nothing to play.
func (h *Hand) SelectPlay(hint Hint) (deck.Card, bool) {
	idx := -1
	if !h.hasPlayedOpener {
		if i := h.indexOf(deck.Opener); i >= 0 {
			idx = i
			h.hasPlayedOpener = true
		}
	}

	if idx < 0 {
		for i, card := range h.cards {
			if !hint.IsAny() && !card.Beats(hint.Card()) {
				continue
			}

			if idx < 0 || weaker(card, h.cards[idx]) {
				idx = i
			}
		}
	}

	if idx < 0 {
		return deck.Card{}, false
	}

	card := h.cards[idx]
	h.cards = append(h.cards[:idx:idx], h.cards[idx+1:]...)
	return card, true
}

// weaker orders by play order, then by display order so ties are deterministic
func weaker(c1, c2 deck.Card) bool {
	if p1, p2 := deck.PlayOrder(c1.Rank), deck.PlayOrder(c2.Rank); p1 != p2 {
		return p1 < p2
	}

	return c1.DisplayLess(c2)
}

func (h *Hand) indexOf(card deck.Card) int {
	for i, c := range h.cards {
		if c == card {
			return i
		}
	}

	return -1
}

// IsEmpty returns true once every card has been played
func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// Len returns the number of cards left
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in display order
func (h *Hand) Cards() deck.Hand {
	return h.cards.Sorted()
}
