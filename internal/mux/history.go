package mux

import (
	"sync"
	"time"

	"president-sim/pkg/president"
)

const defaultHistorySize = 100

// simulation is a finished game as returned to clients
type simulation struct {
	UUID    string             `json:"uuid"`
	Players int                `json:"players"`
	Result  *president.Result  `json:"result"`
	Ranking []int              `json:"ranking"`
	Events  []*president.Event `json:"events,omitempty"`
	Created time.Time          `json:"created"`
}

// summary is the simulation without its event log
func (s *simulation) summary() *simulation {
	cp := *s
	cp.Events = nil
	return &cp
}

// history keeps the most recent simulations in memory. Nothing outlives the process.
type history struct {
	lock   sync.RWMutex
	size   int
	order  []string
	byUUID map[string]*simulation
}

func newHistory(size int) *history {
	return &history{
		size:   size,
		order:  make([]string, 0, size),
		byUUID: make(map[string]*simulation),
	}
}

func (h *history) add(s *simulation) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if len(h.order) >= h.size {
		delete(h.byUUID, h.order[0])
		h.order = h.order[1:]
	}

	h.order = append(h.order, s.UUID)
	h.byUUID[s.UUID] = s
}

func (h *history) get(uuid string) (*simulation, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	s, ok := h.byUUID[uuid]
	return s, ok
}

// list returns summaries, newest first
func (h *history) list(start, rows int) []*simulation {
	h.lock.RLock()
	defer h.lock.RUnlock()

	sims := make([]*simulation, 0, rows)
	for i := len(h.order) - 1 - start; i >= 0 && len(sims) < rows; i-- {
		sims = append(sims, h.byUUID[h.order[i]].summary())
	}

	return sims
}
