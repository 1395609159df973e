package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_HasCard(t *testing.T) {
	hand := HandFromString("C2,C3,D4")
	assert.True(t, hand.HasCard(MustCardFromToken("C3")))
	assert.False(t, hand.HasCard(MustCardFromToken("S3")))
}

func TestHand_Sort(t *testing.T) {
	hand := HandFromString("S3 H2 D4 HA C9 D2 D3")
	sort.Sort(hand)
	assert.Equal(t, "D3 D4 D2 C9 HA H2 S3", hand.String())
}

func TestHand_Sorted(t *testing.T) {
	hand := HandFromString("S3,D3")
	sorted := hand.Sorted()
	assert.Equal(t, "D3 S3", sorted.String())
	assert.Equal(t, "S3 D3", hand.String(), "source hand is untouched")
}

func TestHandFromString(t *testing.T) {
	assert.Equal(t, Hand{}, HandFromString(""))
	assert.Equal(t, "D3 H2", HandFromString(" D3,  H2 ").String())
	assert.Panics(t, func() {
		HandFromString("D3,XX")
	})
}
