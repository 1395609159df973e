package protocol

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned when using a connection after calling Close on it
var ErrClosed = errors.New("connection is closed")

// Conn is one end of a point-to-point, ordered, reliable message connection.
// Send and Recv may each be used by a single goroutine.
type Conn interface {
	// Send delivers a message to the peer, blocking until it has been accepted
	Send(ctx context.Context, msg Message) error

	// Recv blocks until the peer sends a message.
	// io.EOF is returned once the peer has closed its end and nothing is left to read.
	Recv(ctx context.Context) (Message, error)

	// Close releases this end. It is safe to call more than once.
	Close() error
}

// IsClosed returns true if err means the connection is gone rather than broken
func IsClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}

type chanConn struct {
	in  <-chan Message
	out chan<- Message

	closed     chan struct{}
	peerClosed <-chan struct{}
	closeOnce  sync.Once
}

// Pipe returns the two ends of an unbuffered in-process connection.
// Every Send blocks until the peer receives the message.
func Pipe() (Conn, Conn) {
	aToB := make(chan Message)
	bToA := make(chan Message)
	aClosed := make(chan struct{})
	bClosed := make(chan struct{})

	a := &chanConn{
		in:         bToA,
		out:        aToB,
		closed:     aClosed,
		peerClosed: bClosed,
	}

	b := &chanConn{
		in:         aToB,
		out:        bToA,
		closed:     bClosed,
		peerClosed: aClosed,
	}

	return a, b
}

func (c *chanConn) Send(ctx context.Context, msg Message) error {
	select {
	case <-c.closed:
		return ErrClosed
	case <-c.peerClosed:
		return io.ErrClosedPipe
	default:
	}

	select {
	case c.out <- msg:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-c.peerClosed:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *chanConn) Recv(ctx context.Context) (Message, error) {
	select {
	case <-c.closed:
		return Message{}, ErrClosed
	default:
	}

	select {
	case msg := <-c.in:
		return msg, nil
	case <-c.peerClosed:
		// a peer blocked in Send may still win the race against its own Close
		select {
		case msg := <-c.in:
			return msg, nil
		default:
			return Message{}, io.EOF
		}
	case <-c.closed:
		return Message{}, ErrClosed
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (c *chanConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
	})

	return nil
}
