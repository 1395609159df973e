package mux

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"president-sim/pkg/deck"
	"president-sim/pkg/president"
)

func kinds(events []*president.Event) []president.EventKind {
	k := make([]president.EventKind, len(events))
	for i, e := range events {
		k[i] = e.Kind
	}

	return k
}

func Test_postSimulation(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var sim simulation
	assertPost(t, ts, "/simulation", simulationRequest{
		Players: 2,
		Cards:   []string{"D3", "D4", "H2", "S3"},
	}, &sim, 201)

	a.Equal(2, sim.Players)
	a.Equal(0, sim.Result.Winner)
	a.Equal(1, sim.Result.Loser)
	a.Equal([]int{0, 1}, sim.Ranking)
	a.Equal([]president.EventKind{
		president.EventRoster,
		president.EventHand,
		president.EventHand,
		president.EventOpen,
		president.EventPlay,
		president.EventPlay,
		president.EventWinner,
		president.EventLoser,
	}, kinds(sim.Events))
	a.Equal([]deck.Card{deck.Opener}, sim.Events[3].Cards)

	var found simulation
	assertGet(t, ts, "/simulation/"+sim.UUID, &found, 200)
	a.Equal(sim.UUID, found.UUID)
	a.Equal(len(sim.Events), len(found.Events))

	var list []*simulation
	assertGet(t, ts, "/simulation", &list, 200)
	a.Equal(1, len(list))
	a.Equal(sim.UUID, list[0].UUID)
	a.Empty(list[0].Events)
}

func Test_postSimulation_shuffled(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var sim simulation
	assertPost(t, ts, "/simulation", simulationRequest{Players: 4}, &sim, 201)
	assert.Equal(t, 3, len(sim.Result.Finished))
	assert.Equal(t, 4, len(sim.Ranking))
	assert.Empty(t, sim.Result.Dropped)
}

func Test_postSimulation_errors(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/simulation", simulationRequest{Players: 0}, &errObj, 400)
	a.Equal("expected 1–10 players, got 0", errObj.Message)

	assertPost(t, ts, "/simulation", simulationRequest{Players: 11}, &errObj, 400)
	a.Equal("expected 1–10 players, got 11", errObj.Message)

	cards := make([]string, 0, deck.MaxCards+1)
	for _, c := range deck.New().Cards {
		cards = append(cards, c.Token())
	}
	cards = append(cards, "D3")
	assertPost(t, ts, "/simulation", simulationRequest{Players: 2, Cards: cards}, &errObj, 400)
	a.Equal(deck.ErrTooManyCards.Error(), errObj.Message)

	assertPost(t, ts, "/simulation", "{", &errObj, 400)
	a.Equal(400, errObj.StatusCode)
}

func Test_getSimulationUUID_notFound(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/simulation/00000000-0000-0000-0000-000000000000", &errObj, 404)
	assert.Equal(t, "simulation not found", errObj.Message)
}

func Test_getSimulation_pagination(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	uuids := make([]string, 3)
	for i := range uuids {
		var sim simulation
		assertPost(t, ts, "/simulation", simulationRequest{Players: 2, Cards: []string{"D3", "D4"}}, &sim, 201)
		uuids[i] = sim.UUID
	}

	var list []*simulation
	assertGet(t, ts, "/simulation?start=1&rows=1", &list, 200)
	assert.Equal(t, 1, len(list))
	assert.Equal(t, uuids[1], list[0].UUID)

	var errObj errorResponse
	assertGet(t, ts, "/simulation?start=-1", &errObj, 400)
	assert.Equal(t, "start cannot be less than zero", errObj.Message)
}

func Test_history_evicts(t *testing.T) {
	h := newHistory(2)
	for i := 0; i < 3; i++ {
		h.add(&simulation{UUID: fmt.Sprintf("sim-%d", i)})
	}

	_, ok := h.get("sim-0")
	assert.False(t, ok)

	list := h.list(0, 10)
	assert.Equal(t, 2, len(list))
	assert.Equal(t, "sim-2", list[0].UUID)
	assert.Equal(t, "sim-1", list[1].UUID)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/simulation/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func Test_getSimulationWS(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(simulationRequest{
		Players: 2,
		Cards:   []string{"D3", "D4", "H2", "S3"},
	}))

	var events []*president.Event
	var result *simulation
	for result == nil {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))

		switch msg.Type {
		case wsTypeEvent:
			events = append(events, msg.Event)
		case wsTypeResult:
			result = msg.Simulation
		default:
			t.Fatalf("unexpected message %s", msg.Type)
		}
	}

	a.Equal([]president.EventKind{
		president.EventRoster,
		president.EventHand,
		president.EventHand,
		president.EventOpen,
		president.EventPlay,
		president.EventPlay,
		president.EventWinner,
		president.EventLoser,
	}, kinds(events))
	a.Equal(0, result.Result.Winner)
	a.Equal(1, result.Result.Loser)
	a.Empty(result.Events)

	_, _, err := conn.ReadMessage()
	a.True(websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
}

func Test_getSimulationWS_badRequest(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(simulationRequest{Players: 42}))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, wsTypeError, msg.Type)
	assert.Equal(t, 400, msg.Error.StatusCode)
	assert.Equal(t, "expected 1–10 players, got 42", msg.Error.Message)
}
