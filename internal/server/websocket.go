package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/sink"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// newUpgrader accepts any origin when allowed is "*" or empty, otherwise
// only requests whose Origin header equals allowed.
func newUpgrader(allowed string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowed == "" || allowed == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowed
		},
	}
}

// liveError is sent when a frame cannot be decoded.
type liveError struct {
	Error errorResponse `json:"error"`
}

// handleLive streams renders over a WebSocket. Every connection owns its
// own boundary so that repeated frames with the same props hit the memo and
// an invalid value is reported once until the props change.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	cfg := s.config().Server
	upgrader := newUpgrader(cfg.CORSOrigin)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	ctx := r.Context()
	boundary := barcode.NewBoundary(s.registry, barcode.WithLogger(s.logger))
	limit := cfg.MaxValueLength

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	// Writes are serialized through out so that pings and replies never
	// write concurrently.
	out := make(chan []byte, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(conn, out, done)
	}()
	send := func(msg []byte) bool {
		select {
		case out <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "err", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		var p barcode.Props
		if err := json.Unmarshal(data, &p); err != nil {
			if !send(errorFrame(errors.ErrCodeInvalidInput, "invalid JSON: "+err.Error())) {
				return
			}
			continue
		}
		if limit > 0 && len(p.Value) > limit {
			if !send(errorFrame(errors.ErrCodeInvalidInput, "value too long")) {
				return
			}
			continue
		}

		d := boundary.Render(ctx, p.Merge(s.defaults()))
		body, err := sink.RenderJSON(d, sink.WithJSONCompact())
		if err != nil {
			s.logger.Error("encode live frame", "err", err)
			continue
		}
		if !send(body) {
			return
		}
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, out <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Debug("websocket write failed", "err", err)
				return
			}
			websocketMessagesTotal.WithLabelValues("sent").Inc()
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func errorFrame(code errors.Code, msg string) []byte {
	b, _ := json.Marshal(liveError{Error: errorResponse{Error: msg, Code: string(code)}})
	return b
}
