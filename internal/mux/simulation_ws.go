package mux

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"president-sim/pkg/president"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// sendBuffer lets the coordinator run ahead of a slow observer
const sendBuffer = 64

// wsMessage is one frame sent to an observer
type wsMessage struct {
	Type       string           `json:"type"`
	Event      *president.Event `json:"event,omitempty"`
	Simulation *simulation      `json:"simulation,omitempty"`
	Error      *errorResponse   `json:"error,omitempty"`
}

// ws message types
const (
	wsTypeEvent  = "event"
	wsTypeResult = "result"
	wsTypeError  = "error"
)

// getSimulationWS reads a simulationRequest as the first frame, then streams
// every event of the game followed by the result
func (m *Mux) getSimulationWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		var req simulationRequest
		if err := conn.ReadJSON(&req); err != nil {
			logrus.WithError(err).Debug("could not read simulation request")
			_ = conn.Close()
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		send := make(chan wsMessage, sendBuffer)
		writeDone := make(chan bool)
		readDone := make(chan bool)

		go func() {
			defer close(writeDone)
			m.webSocketWriteLoop(conn, send, cancel)
		}()

		go func() {
			defer close(readDone)
			m.webSocketReadLoop(conn, cancel)
		}()

		defer func() {
			cancel()
			close(send)
			<-writeDone

			// wait for the close frame
			select {
			case <-readDone:
			case <-time.After(time.Second):
			}

			_ = conn.Close()
			<-readDone
		}()

		observer := president.ReporterFunc(func(e *president.Event) {
			select {
			case send <- wsMessage{Type: wsTypeEvent, Event: e}:
			case <-ctx.Done():
			}
		})

		msg := wsMessage{Type: wsTypeResult}
		sim, status, err := m.runSimulation(ctx, req, observer)
		if err != nil {
			resp := newErrorResponse(status, err)
			if status >= 500 {
				logrus.WithError(err).Error("simulation failed")
			}

			msg = wsMessage{Type: wsTypeError, Error: &resp}
		} else {
			msg.Simulation = sim.summary()
		}

		select {
		case send <- msg:
		case <-ctx.Done():
		}
	}
}

// webSocketWriteLoop writes every message from send, then a close frame once send is closed.
// A failed write cancels the game.
func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, send <-chan wsMessage, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cancel()
				return
			}
		case msg, ok := <-send:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simulation complete"))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).Error("could not write message")
				cancel()
				return
			}
		}
	}
}

// webSocketReadLoop discards anything the observer sends. It returns once the
// connection is closed, and cancels the game if that happens early.
func (m *Mux) webSocketReadLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("observer went away")
			}

			return
		}
	}
}
