package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
	assert.Equal(t, Card{Rank: 3, Suit: Diamonds}, Opener)
}

func TestPlayOrder(t *testing.T) {
	a := assert.New(t)

	ranks := []int{3, 4, 5, 6, 7, 8, 9, 10, Jack, Queen, King, Ace, 2}
	for i, rank := range ranks {
		a.Equal(i+1, PlayOrder(rank), "rank %d", rank)
	}

	a.Equal(0, PlayOrder(1))
	a.Equal(0, PlayOrder(15))
}

func TestSuitOrder(t *testing.T) {
	a := assert.New(t)
	a.Equal(0, SuitOrder(Diamonds))
	a.Equal(1, SuitOrder(Clubs))
	a.Equal(2, SuitOrder(Hearts))
	a.Equal(3, SuitOrder(Spades))
	a.Equal(4, SuitOrder("stars"))
}

func TestCard_Beats(t *testing.T) {
	a := assert.New(t)

	a.True(MustCardFromToken("SA").Beats(MustCardFromToken("HK")))
	a.False(MustCardFromToken("HK").Beats(MustCardFromToken("SA")))

	// suit does not matter
	a.False(MustCardFromToken("S3").Beats(MustCardFromToken("D3")))
	a.False(MustCardFromToken("D3").Beats(MustCardFromToken("S3")))

	full := New().Cards
	two := MustCardFromToken("C2")
	three := MustCardFromToken("C3")
	for _, card := range full {
		if card.Rank != 2 {
			a.True(two.Beats(card), "2 beats %s", card)
		}

		a.False(three.Beats(card), "3 does not beat %s", card)
	}

	// strict total order over ranks
	for _, c1 := range full {
		for _, c2 := range full {
			if c1.Rank == c2.Rank {
				a.False(c1.Beats(c2))
				continue
			}

			a.True(c1.Beats(c2) != c2.Beats(c1), "%s vs %s", c1, c2)
		}
	}
}

func TestCard_DisplayLess(t *testing.T) {
	a := assert.New(t)
	a.True(MustCardFromToken("D2").DisplayLess(MustCardFromToken("C3")))
	a.True(MustCardFromToken("HA").DisplayLess(MustCardFromToken("H2")))
	a.True(MustCardFromToken("S3").DisplayLess(MustCardFromToken("SA")))
	a.False(MustCardFromToken("S3").DisplayLess(MustCardFromToken("H2")))
}

func TestCard_Token(t *testing.T) {
	a := assert.New(t)
	a.Equal("D3", Card{Rank: 3, Suit: Diamonds}.Token())
	a.Equal("ST", Card{Rank: 10, Suit: Spades}.Token())
	a.Equal("HA", Card{Rank: Ace, Suit: Hearts}.Token())
	a.Equal("C2", Card{Rank: 2, Suit: Clubs}.String())
	a.Equal("??", Card{}.Token())
}

func TestCard_Symbol(t *testing.T) {
	a := assert.New(t)
	a.Equal("2♡", Card{Rank: 2, Suit: Hearts}.Symbol())
	a.Equal("J♣", Card{Rank: Jack, Suit: Clubs}.Symbol())
	a.Equal("Q♢", Card{Rank: Queen, Suit: Diamonds}.Symbol())
	a.Equal("K♠", Card{Rank: King, Suit: Spades}.Symbol())
	a.Equal("A♠", Card{Rank: Ace, Suit: Spades}.Symbol())
}

func TestCardFromToken(t *testing.T) {
	a := assert.New(t)

	for _, card := range New().Cards {
		parsed, err := CardFromToken(card.Token())
		a.NoError(err)
		a.Equal(card, parsed)
	}

	for _, bad := range []string{"", "D", "D1", "X3", "d3", "D10", "D3 ", "3D"} {
		_, err := CardFromToken(bad)
		a.ErrorIs(err, ErrInvalidCard, bad)
	}

	a.Panics(func() {
		MustCardFromToken("ZZ")
	})
}

func TestCard_TextMarshaling(t *testing.T) {
	a := assert.New(t)

	b, err := MustCardFromToken("CJ").MarshalText()
	a.NoError(err)
	a.Equal("CJ", string(b))

	_, err = Card{Rank: 1, Suit: Clubs}.MarshalText()
	a.ErrorIs(err, ErrInvalidCard)

	var c Card
	a.NoError(c.UnmarshalText([]byte("HQ")))
	a.Equal(Card{Rank: Queen, Suit: Hearts}, c)
	a.Error(c.UnmarshalText([]byte("H1")))
}
