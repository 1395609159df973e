package president

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"president-sim/internal/rng"
	"president-sim/internal/util"
	"president-sim/pkg/deck"
	"president-sim/pkg/protocol"
)

type seatState int

const (
	seatActive seatState = iota
	seatFinished
	seatDropped
)

// seat is the coordinator's view of a worker: never its hand, only its card count
type seat struct {
	Identity
	conn  protocol.Conn
	cards int
	state seatState

	// handed to the worker, which closes it
	workerConn protocol.Conn
}

// Game is the coordinator. It owns the table state and drives the workers.
type Game struct {
	uuid     string
	deck     *deck.Deck
	players  int
	options  Options
	logger   logrus.FieldLogger
	reporter Reporter

	// run starts a worker; tests replace it to inject misbehaving workers
	run func(ctx context.Context, w *Worker) error

	started bool
	seats   []*seat

	// table state, only touched by the coordinator goroutine
	current  int
	lastCard *deck.Card
	passes   int
	active   int
	winner   int
	finished []int
	dropped  []int
}

// NewGame returns a game for players workers sharing the deck
func NewGame(logger logrus.FieldLogger, d *deck.Deck, players int, opts Options) (*Game, error) {
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = DefaultMaxPlayers
	}

	if players < 1 || players > opts.MaxPlayers {
		return nil, PlayerCountError{
			Max: opts.MaxPlayers,
			Got: players,
		}
	}

	transport, err := ParseTransport(string(opts.Transport))
	if err != nil {
		return nil, err
	}
	opts.Transport = transport

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = discardReporter{}
	}

	if opts.Names == nil {
		opts.Names = rng.Crypto{}
	}

	id := uuid.New().String()
	return &Game{
		uuid:     id,
		deck:     d,
		players:  players,
		options:  opts,
		logger:   logger.WithField("game", id),
		reporter: reporter,
		run: func(ctx context.Context, w *Worker) error {
			return w.Run(ctx)
		},
		winner: -1,
	}, nil
}

// UUID returns the game's identifier
func (g *Game) UUID() string {
	return g.uuid
}

// Run plays the game to the end and returns the ranking.
// Every worker has exited by the time Run returns.
func (g *Game) Run(ctx context.Context) (result *Result, err error) {
	if g.started {
		return nil, ErrGameAlreadyStarted
	}
	g.started = true

	for _, card := range g.deck.Discarded {
		g.report(newEvent(EventDiscard, "coordinator: duplicated card %s discarded", card))
	}

	hands := g.deck.Deal(g.players)
	if err := g.seatPlayers(hands); err != nil {
		return nil, err
	}

	var eg errgroup.Group
	defer func() {
		g.closeAll()
		if werr := eg.Wait(); werr != nil {
			g.logger.WithError(werr).Warn("worker failed")
			if err == nil {
				err = fmt.Errorf("worker failed: %w", werr)
			}
		}
	}()

	for i, s := range g.seats {
		worker := NewWorker(g.logger, s.Identity, NewHand(hands[i]), s.workerConn)
		eg.Go(func() error {
			return g.run(ctx, worker)
		})
	}

	g.announce(hands)
	if err := g.play(ctx); err != nil {
		return nil, err
	}

	return g.finish(ctx), nil
}

func (g *Game) seatPlayers(hands []deck.Hand) error {
	g.seats = make([]*seat, g.players)
	for i := range g.seats {
		var coordinatorConn, workerConn protocol.Conn
		if g.options.Transport == TransportPipe {
			var err error
			coordinatorConn, workerConn, err = protocol.OSPipe()
			if err != nil {
				for _, s := range g.seats[:i] {
					_ = s.conn.Close()
					_ = s.workerConn.Close()
				}
				return err
			}
		} else {
			coordinatorConn, workerConn = protocol.Pipe()
		}

		g.seats[i] = &seat{
			Identity: Identity{
				Seat: i,
				ID:   uuid.New().String(),
				Name: util.GetRandomName(g.options.Names),
			},
			conn:       coordinatorConn,
			workerConn: workerConn,
			cards:      len(hands[i]),
		}
	}

	g.active = g.players
	return nil
}

func (g *Game) announce(hands []deck.Hand) {
	roster := make([]Identity, len(g.seats))
	names := ""
	for i, s := range g.seats {
		roster[i] = s.Identity
		if i > 0 {
			names += ", "
		}
		names += fmt.Sprintf("%d (%s)", i+1, s.Name)
	}

	e := newEvent(EventRoster, "coordinator: the players are %s", names)
	e.Roster = roster
	g.report(e)

	for i, s := range g.seats {
		sorted := hands[i].Sorted()
		g.report(newSeatEvent(EventHand, s.Identity, sorted, "%s (%s): I have %d cards: %s", s.Label(), s.Name, len(sorted), sorted))
	}
}

// play runs turns until a single active seat remains
func (g *Game) play(ctx context.Context) error {
	// a seat dealt no cards has nothing to shed
	for _, s := range g.seats {
		if s.cards == 0 && g.active > 1 {
			g.complete(s)
		}
	}

	if g.active <= 1 {
		return nil
	}

	opener := g.deck.IndexOf(deck.Opener)
	if opener < 0 {
		opener = 0
	}
	g.current = opener % g.players

	if s := g.seats[g.current]; s.state != seatActive {
		g.advance()
	}

	for {
		if err := g.turn(ctx); err != nil {
			return err
		}

		if g.active <= 1 {
			return nil
		}

		g.advance()
	}
}

// advance moves current to the next active seat
func (g *Game) advance() {
	for i := 0; i < g.players; i++ {
		g.current = (g.current + 1) % g.players
		if g.seats[g.current].state == seatActive {
			return
		}
	}
}

func (g *Game) hint() protocol.Message {
	if g.lastCard == nil || g.passes >= g.active-1 {
		return protocol.Any()
	}

	return protocol.Beat(*g.lastCard)
}

// turn performs one exchange with the current seat and applies the reply.
// Only cancellation of ctx is returned as an error, any other failure drops the seat.
func (g *Game) turn(ctx context.Context) error {
	s := g.seats[g.current]

	turnCtx := ctx
	if g.options.TurnTimeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, g.options.TurnTimeout)
		defer cancel()
	}

	msg := g.hint()
	log := g.logger.WithField("seat", s.Seat+1)
	log.WithField("message", msg).Debug("notify")

	if err := s.conn.Send(turnCtx, msg); err != nil {
		return g.fail(ctx, s, err)
	}

	reply, err := s.conn.Recv(turnCtx)
	if err != nil {
		return g.fail(ctx, s, err)
	}

	switch reply.Kind {
	case protocol.KindPass:
		g.passes++
		g.report(newSeatEvent(EventPass, s.Identity, nil, "coordinator: %s passes", s.Label()))
	case protocol.KindPlay:
		card := reply.Card
		kind, verb := EventPlay, "plays"
		if g.lastCard == nil {
			kind, verb = EventOpen, "opens with"
		}

		g.lastCard = &card
		g.passes = 0
		s.cards--
		g.report(newSeatEvent(kind, s.Identity, []deck.Card{card}, "coordinator: %s %s %s", s.Label(), verb, card))

		if s.cards > 0 {
			return nil
		}

		reply, err = s.conn.Recv(turnCtx)
		if err != nil {
			return g.fail(ctx, s, err)
		}

		if reply.Kind != protocol.KindCompletion {
			return g.fail(ctx, s, fmt.Errorf("%w: %s after the last card", ErrUnexpectedReply, reply.Kind))
		}

		g.complete(s)
	default:
		return g.fail(ctx, s, fmt.Errorf("%w: %s", ErrUnexpectedReply, reply.Kind))
	}

	return nil
}

func (g *Game) complete(s *seat) {
	s.state = seatFinished
	g.active--
	g.passes = 0
	g.finished = append(g.finished, s.Seat)

	if g.winner < 0 {
		g.winner = s.Seat
		g.report(newSeatEvent(EventWinner, s.Identity, nil, "coordinator: %s is winner", s.Label()))
		return
	}

	g.report(newSeatEvent(EventComplete, s.Identity, nil, "coordinator: %s completes", s.Label()))
}

// fail drops the seat unless the failure is the game itself being cancelled
func (g *Game) fail(ctx context.Context, s *seat, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	g.logger.WithField("seat", s.Seat+1).WithError(err).Warn("dropping player")
	_ = s.conn.Close()
	s.state = seatDropped
	g.active--
	g.dropped = append(g.dropped, s.Seat)
	g.report(newSeatEvent(EventDrop, s.Identity, nil, "coordinator: %s dropped: %v", s.Label(), err))
	return nil
}

// finish declares the loser and tells every unfinished worker to stop
func (g *Game) finish(ctx context.Context) *Result {
	result := &Result{
		Winner:   g.winner,
		Finished: append([]int{}, g.finished...),
		Loser:    -1,
		Dropped:  append([]int{}, g.dropped...),
	}

	for _, s := range g.seats {
		if s.state == seatActive {
			result.Loser = s.Seat
			g.report(newSeatEvent(EventLoser, s.Identity, nil, "coordinator: %s is loser", s.Label()))
			break
		}
	}

	for _, s := range g.seats {
		if s.state != seatActive {
			continue
		}

		if err := s.conn.Send(ctx, protocol.Done()); err != nil {
			g.logger.WithField("seat", s.Seat+1).WithError(err).Debug("could not send done")
		}
	}

	return result
}

// closeAll releases the coordinator's end of every connection
func (g *Game) closeAll() {
	for _, s := range g.seats {
		_ = s.conn.Close()
	}
}

func (g *Game) report(e *Event) {
	g.reporter.Report(e)
}
