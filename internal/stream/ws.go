package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/zlog"
)

const (
	// writeWait is the maximum time allowed to write one frame.
	writeWait = 10 * time.Second
	// pongWait is how long the client has to answer a ping.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize limits inbound frames; clients only receive here.
	maxMessageSize = 1024
)

// wsEvent is the JSON envelope frames are delivered in over WebSocket,
// mirroring the named-event shape of the SSE transport.
type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WS is a WebSocket-backed stream. One goroutine drains the outbound queue
// and keeps the connection alive with pings; another consumes (and discards)
// inbound frames so client disconnects surface promptly.
type WS struct {
	conn     *websocket.Conn
	send     chan frame
	terminal chan struct{}
	once     sync.Once
}

// NewWS wraps an upgraded connection and starts its read and write pumps.
func NewWS(conn *websocket.Conn) *WS {
	s := &WS{
		conn:     conn,
		send:     make(chan frame, sendBufferSize),
		terminal: make(chan struct{}),
	}

	go s.writePump()
	go s.readPump()

	return s
}

// Send queues one named event for delivery. It never blocks: a full queue
// fails with ErrSlowClient.
func (s *WS) Send(event string, data []byte) error {
	select {
	case <-s.terminal:
		return ErrStreamClosed
	default:
	}

	select {
	case s.send <- frame{event: event, data: data}:
		return nil
	case <-s.terminal:
		return ErrStreamClosed
	default:
		return ErrSlowClient
	}
}

// Close ends the stream. Safe to call more than once.
func (s *WS) Close() error {
	s.terminate()
	return nil
}

// Terminal returns a channel closed once the stream ended for any reason.
func (s *WS) Terminal() <-chan struct{} {
	return s.terminal
}

func (s *WS) terminate() {
	s.once.Do(func() {
		close(s.terminal)
		if err := s.conn.Close(); err != nil {
			zlog.Logger.Debug().Err(err).Msg("failed to close websocket connection")
		}
	})
}

func (s *WS) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.terminate()
	}()

	for {
		select {
		case <-s.terminal:
			return
		case f := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(wsEvent{Event: f.event, Data: f.data}); err != nil {
				zlog.Logger.Debug().Err(err).Msg("failed to write websocket frame")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes inbound frames until the connection errors. Clients do
// not send anything meaningful on this stream; reading only keeps pong
// handling alive and detects disconnects.
func (s *WS) readPump() {
	defer s.terminate()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
