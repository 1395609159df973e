package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"president-sim/pkg/deck"
)

func TestEncode(t *testing.T) {
	a := assert.New(t)
	d3 := deck.MustCardFromToken("D3")

	a.Equal("any", Encode(Any()))
	a.Equal("done", Encode(Done()))
	a.Equal("pass", Encode(Pass()))
	a.Equal("completion", Encode(Completion()))
	a.Equal("D3", Encode(Beat(d3)))
	a.Equal("D3", Encode(Play(d3)))
	a.Equal("ST", Play(deck.MustCardFromToken("ST")).String())
}

func TestDecode(t *testing.T) {
	a := assert.New(t)
	h2 := deck.MustCardFromToken("H2")

	tests := []struct {
		token  string
		dir    Direction
		expect Message
	}{
		{"any", Downstream, Any()},
		{"done", Downstream, Done()},
		{"H2", Downstream, Beat(h2)},
		{"pass", Upstream, Pass()},
		{"completion", Upstream, Completion()},
		{"H2", Upstream, Play(h2)},
	}

	for _, test := range tests {
		msg, err := Decode(test.token, test.dir)
		a.NoError(err, test.token)
		a.Equal(test.expect, msg, test.token)
		a.Equal(test.dir, msg.Kind.Direction(), test.token)
	}

	// each direction only accepts its own words
	for _, bad := range []struct {
		token string
		dir   Direction
	}{
		{"pass", Downstream},
		{"completion", Downstream},
		{"any", Upstream},
		{"done", Upstream},
		{"", Upstream},
		{"XX", Downstream},
	} {
		_, err := Decode(bad.token, bad.dir)
		a.ErrorIs(err, ErrUnknownMessage, bad.token)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "beat", KindBeat.String())
	assert.Equal(t, "completion", KindCompletion.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
