package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"president-sim/internal/rng"
	"president-sim/pkg/deck"
	"president-sim/pkg/president"
	"president-sim/pkg/report"
)

var errSimulationNotFound = errors.New("simulation not found")

type simulationRequest struct {
	Players int `json:"players"`

	// Cards are card tokens read like the command line deck. Empty deals a shuffled full deck.
	Cards []string `json:"cards"`
}

func (m *Mux) newDeck(cards []string) (*deck.Deck, error) {
	if len(cards) == 0 {
		d := deck.New()
		d.Shuffle(rng.New(m.config.seed))
		return d, nil
	}

	return deck.Read(strings.NewReader(strings.Join(cards, " ")))
}

// requestErrorStatus maps an error from setting up a game to a status code
func requestErrorStatus(err error) int {
	var pce president.PlayerCountError
	if errors.As(err, &pce) || errors.Is(err, deck.ErrTooManyCards) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// runSimulation plays a game for req. Every event also goes to observer when it is not nil.
func (m *Mux) runSimulation(ctx context.Context, req simulationRequest, observer president.Reporter) (*simulation, int, error) {
	rec := report.NewRecorder()
	var reporter president.Reporter = rec
	if observer != nil {
		reporter = report.Multi{rec, observer}
	}

	d, err := m.newDeck(req.Cards)
	if err != nil {
		return nil, requestErrorStatus(err), err
	}

	opts := m.config.options
	opts.Reporter = reporter

	game, err := president.NewGame(m.logger, d, req.Players, opts)
	if err != nil {
		return nil, requestErrorStatus(err), err
	}

	result, err := game.Run(ctx)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	sim := &simulation{
		UUID:    game.UUID(),
		Players: req.Players,
		Result:  result,
		Ranking: result.Ranking(),
		Events:  rec.Events(),
		Created: time.Now(),
	}

	m.history.add(sim)
	return sim, http.StatusCreated, nil
}

func (m *Mux) postSimulation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req simulationRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		sim, status, err := m.runSimulation(r.Context(), req, nil)
		if err != nil {
			writeJSONError(w, status, err)
			return
		}

		writeJSON(w, status, sim)
	}
}

func (m *Mux) getSimulation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, m.history.list(start, rows))
	}
}

func (m *Mux) getSimulationUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sim := r.Context().Value(ctxSimulationKey).(*simulation)
		writeJSON(w, http.StatusOK, sim)
	}
}

func (m *Mux) simulationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := strings.ToLower(mux.Vars(r)["uuid"])
		sim, ok := m.history.get(uuid)
		if !ok {
			writeJSONError(w, http.StatusNotFound, errSimulationNotFound)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSimulationKey, sim)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
