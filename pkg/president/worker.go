package president

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"president-sim/pkg/protocol"
)

// WorkerState is where a worker is in its loop
type WorkerState int

// worker states
const (
	WorkerWaiting WorkerState = iota
	WorkerDeciding
	WorkerReplying
	// WorkerFinished means the hand was emptied
	WorkerFinished
	// WorkerStopped means the coordinator ended the worker, or the connection went away
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerWaiting:
		return "waiting"
	case WorkerDeciding:
		return "deciding"
	case WorkerReplying:
		return "replying"
	case WorkerFinished:
		return "finished"
	case WorkerStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Worker is one player. It owns its hand and its end of the connection.
type Worker struct {
	Identity

	hand   *Hand
	conn   protocol.Conn
	logger logrus.FieldLogger
	state  WorkerState
}

// NewWorker returns a worker for the identity holding hand, talking over conn
func NewWorker(logger logrus.FieldLogger, id Identity, hand *Hand, conn protocol.Conn) *Worker {
	return &Worker{
		Identity: id,
		hand:     hand,
		conn:     conn,
		logger: logger.WithFields(logrus.Fields{
			"seat":   id.Seat + 1,
			"worker": id.ID,
		}),
		state: WorkerWaiting,
	}
}

// State returns the worker's state. It is only stable once Run has returned.
func (w *Worker) State() WorkerState {
	return w.state
}

// Run loops until the hand is empty, the coordinator says done, the connection
// closes, or ctx is cancelled. The connection is always closed on return.
// Only a message the worker cannot act on is returned as an error.
func (w *Worker) Run(ctx context.Context) (err error) {
	defer func() {
		_ = w.conn.Close()
		if errors.Is(err, errStopped) {
			err = nil
		}
	}()

	for {
		w.state = WorkerWaiting
		msg, err := w.conn.Recv(ctx)
		if err != nil {
			w.logger.WithError(err).Debug("connection ended")
			w.state = WorkerStopped
			return nil
		}

		var hint Hint
		switch msg.Kind {
		case protocol.KindDone:
			w.logger.Debug("done")
			w.state = WorkerStopped
			return nil
		case protocol.KindAny:
			hint = HintAny
		case protocol.KindBeat:
			hint = HintBeat(msg.Card)
		default:
			w.state = WorkerStopped
			return fmt.Errorf("%s: %w: %s", w.Label(), ErrUnexpectedMessage, msg.Kind)
		}

		w.state = WorkerDeciding
		card, ok := w.hand.SelectPlay(hint)

		w.state = WorkerReplying
		if !ok {
			w.logger.WithField("hint", hint).Debug("pass")
			if err := w.reply(ctx, protocol.Pass()); err != nil {
				return err
			}

			continue
		}

		w.logger.WithField("hint", hint).WithField("card", card).Debug("play")
		if err := w.reply(ctx, protocol.Play(card)); err != nil {
			return err
		}

		if w.hand.IsEmpty() {
			w.logger.Debug("complete")
			if err := w.reply(ctx, protocol.Completion()); err != nil {
				return err
			}

			w.state = WorkerFinished
			return nil
		}
	}
}

// reply sends msg. A connection that went away stops the worker without an error.
func (w *Worker) reply(ctx context.Context, msg protocol.Message) error {
	err := w.conn.Send(ctx, msg)
	if err == nil {
		return nil
	}

	w.state = WorkerStopped
	if protocol.IsClosed(err) || ctx.Err() != nil {
		w.logger.WithError(err).Debug("could not reply, stopping")
		return errStopped
	}

	return fmt.Errorf("%s: could not send %s: %w", w.Label(), msg, err)
}
