package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"
)

// frames on a byte stream are NUL-terminated tokens
const frameTerminator = byte(0)

// maxFrameSize is the longest valid frame, "completion" plus the terminator
const maxFrameSize = len(tokenCompletion) + 1

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type streamConn struct {
	r     io.ReadCloser
	w     io.WriteCloser
	br    *bufio.Reader
	reads Direction

	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewStreamConn frames messages over a pair of byte streams.
// reads is the direction of the messages arriving on r.
// If r supports SetReadDeadline, Recv honours context deadlines and cancellation.
func NewStreamConn(r io.ReadCloser, w io.WriteCloser, reads Direction) Conn {
	return &streamConn{
		r:      r,
		w:      w,
		br:     bufio.NewReaderSize(r, 64),
		reads:  reads,
		closed: make(chan struct{}),
	}
}

// OSPipe returns a coordinator end and a worker end connected by two OS pipes
func OSPipe() (coordinator Conn, worker Conn, err error) {
	downR, downW, err := os.Pipe()
	if err != nil {
		return nil, nil, fmt.Errorf("could not create pipe: %w", err)
	}

	upR, upW, err := os.Pipe()
	if err != nil {
		_ = downR.Close()
		_ = downW.Close()
		return nil, nil, fmt.Errorf("could not create pipe: %w", err)
	}

	coordinator = NewStreamConn(upR, downW, Upstream)
	worker = NewStreamConn(downR, upW, Downstream)
	return coordinator, worker, nil
}

func (s *streamConn) Send(ctx context.Context, msg Message) error {
	if s.isClosed() {
		return ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	frame := append([]byte(Encode(msg)), frameTerminator)
	if _, err := s.w.Write(frame); err != nil {
		switch {
		case s.isClosed(), errors.Is(err, os.ErrClosed):
			return ErrClosed
		case errors.Is(err, syscall.EPIPE), errors.Is(err, io.ErrClosedPipe):
			return io.ErrClosedPipe
		default:
			return fmt.Errorf("could not write %q: %w", msg, err)
		}
	}

	return nil
}

func (s *streamConn) Recv(ctx context.Context) (Message, error) {
	if s.isClosed() {
		return Message{}, ErrClosed
	}

	if dl, ok := s.r.(readDeadliner); ok {
		deadline, _ := ctx.Deadline()
		_ = dl.SetReadDeadline(deadline)
		stop := context.AfterFunc(ctx, func() {
			_ = dl.SetReadDeadline(time.Now())
		})
		defer stop()
	}

	frame, err := s.readFrame()
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return Message{}, ctx.Err()
		case errors.Is(err, os.ErrDeadlineExceeded):
			return Message{}, context.DeadlineExceeded
		case s.isClosed(), errors.Is(err, os.ErrClosed):
			return Message{}, ErrClosed
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe):
			return Message{}, io.EOF
		default:
			return Message{}, err
		}
	}

	return Decode(frame, s.reads)
}

func (s *streamConn) readFrame() (string, error) {
	buf := make([]byte, 0, maxFrameSize)
	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return "", err
		}

		if b == frameTerminator {
			return string(buf), nil
		}

		if len(buf) == maxFrameSize-1 {
			return "", fmt.Errorf("%w: frame longer than %d bytes", ErrUnknownMessage, maxFrameSize-1)
		}

		buf = append(buf, b)
	}
}

func (s *streamConn) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *streamConn) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.closeErr = errors.Join(s.r.Close(), s.w.Close())
	})

	return s.closeErr
}
