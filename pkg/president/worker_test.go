package president

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"president-sim/pkg/deck"
	"president-sim/pkg/protocol"
)

// startWorker runs a worker for hand and returns the coordinator's end and the worker's result
func startWorker(ctx context.Context, hand string) (protocol.Conn, *Worker, <-chan error) {
	coordinator, conn := protocol.Pipe()
	w := NewWorker(logrus.StandardLogger(), Identity{Seat: 0, ID: "worker"}, NewHand(deck.HandFromString(hand)), conn)

	errs := make(chan error, 1)
	go func() {
		errs <- w.Run(ctx)
	}()

	return coordinator, w, errs
}

func exchange(t *testing.T, conn protocol.Conn, msg protocol.Message) protocol.Message {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, conn.Send(ctx, msg))
	reply, err := conn.Recv(ctx)
	require.NoError(t, err)
	return reply
}

func TestWorker_Run_finishes(t *testing.T) {
	a := assert.New(t)
	coordinator, w, errs := startWorker(context.Background(), "D3 H2")
	defer coordinator.Close()

	a.Equal(protocol.Play(deck.Opener), exchange(t, coordinator, protocol.Any()))
	a.Equal(protocol.Play(card("H2")), exchange(t, coordinator, protocol.Beat(card("D4"))))

	msg, err := coordinator.Recv(context.Background())
	a.NoError(err)
	a.Equal(protocol.Completion(), msg)

	a.NoError(<-errs)
	a.Equal(WorkerFinished, w.State())
}

func TestWorker_Run_passesThenDone(t *testing.T) {
	a := assert.New(t)
	coordinator, w, errs := startWorker(context.Background(), "S3")
	defer coordinator.Close()

	a.Equal(protocol.Pass(), exchange(t, coordinator, protocol.Beat(deck.Opener)))
	a.Equal(protocol.Pass(), exchange(t, coordinator, protocol.Beat(card("SA"))))

	a.NoError(coordinator.Send(context.Background(), protocol.Done()))
	a.NoError(<-errs)
	a.Equal(WorkerStopped, w.State())
}

func TestWorker_Run_closedIsDone(t *testing.T) {
	coordinator, w, errs := startWorker(context.Background(), "S3 D9")
	assert.NoError(t, coordinator.Close())
	assert.NoError(t, <-errs)
	assert.Equal(t, WorkerStopped, w.State())
}

func TestWorker_Run_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	coordinator, w, errs := startWorker(ctx, "S3 D9")
	defer coordinator.Close()

	cancel()
	assert.NoError(t, <-errs)
	assert.Equal(t, WorkerStopped, w.State())
}

func TestWorker_Run_unexpectedMessage(t *testing.T) {
	coordinator, w, errs := startWorker(context.Background(), "S3")
	defer coordinator.Close()

	assert.NoError(t, coordinator.Send(context.Background(), protocol.Pass()))
	assert.ErrorIs(t, <-errs, ErrUnexpectedMessage)
	assert.Equal(t, WorkerStopped, w.State())
}

func TestWorker_Run_coordinatorGoneMidReply(t *testing.T) {
	coordinator, w, errs := startWorker(context.Background(), "S3 D9")

	assert.NoError(t, coordinator.Send(context.Background(), protocol.Any()))
	assert.NoError(t, coordinator.Close())

	assert.NoError(t, <-errs, "a closed connection is not an error")
	assert.Equal(t, WorkerStopped, w.State())
}

func TestWorkerState_String(t *testing.T) {
	assert.Equal(t, "finished", WorkerFinished.String())
	assert.Equal(t, "state(9)", WorkerState(9).String())
}
