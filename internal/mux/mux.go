package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"president-sim/internal/config"
	"president-sim/pkg/president"
)

type ctxKey int

const (
	ctxSimulationKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  muxConfig
	version string
	logger  logrus.FieldLogger
	history *history
}

type muxConfig struct {
	// options are copied into every game
	options president.Options

	// seed for shuffling request decks, zero is random
	seed int64

	// historySize is how many finished simulations are kept for lookup
	historySize int
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()

	opts := president.DefaultOptions()
	opts.MaxPlayers = cfg.Game.MaxPlayers
	opts.TurnTimeout = cfg.Game.TurnTimeout
	opts.Transport = president.Transport(cfg.Game.Transport)

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		logger:  logrus.StandardLogger(),
		config: muxConfig{
			options:     opts,
			seed:        cfg.Game.Seed,
			historySize: defaultHistorySize,
		},
	}
	this.history = newHistory(this.config.historySize)

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/simulation").Handler(this.getSimulation())
	r.Methods(http.MethodPost).Path("/simulation").Handler(this.postSimulation())
	r.Methods(http.MethodGet).Path("/simulation/ws").Handler(this.getSimulationWS())

	sr := r.PathPrefix("/simulation/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	sr.Use(this.simulationMiddleware)
	sr.Methods(http.MethodGet).Path("").Handler(this.getSimulationUUID())

	return this
}
