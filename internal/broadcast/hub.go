// Package broadcast streams world snapshots to read-only spectators over WebSocket.
package broadcast

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/voidfighter/internal/world"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Envelope is the msgpack frame sent to spectators.
type Envelope struct {
	Session  string          `msgpack:"session"`
	Snapshot *world.Snapshot `msgpack:"snapshot"`
}

type spectator struct {
	id      string
	session string // empty watches every session
	conn    *websocket.Conn
	send    chan []byte
}

func (s *spectator) wants(sessionID string) bool {
	return s.session == "" || s.session == sessionID
}

// Hub fans snapshots out to connected spectators. A spectator that cannot keep
// up loses frames rather than slowing the game.
type Hub struct {
	mu         sync.RWMutex
	spectators map[string]*spectator

	logger   *log.Logger
	onDrop   func()
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub. onDrop, if set, is called for every frame
// dropped because a spectator's queue was full.
func NewHub(logger *log.Logger, onDrop func()) *Hub {
	return &Hub{
		spectators: make(map[string]*spectator),
		logger:     logger,
		onDrop:     onDrop,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Len reports the number of connected spectators.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

// Publish queues a snapshot for every spectator watching sessionID.
func (h *Hub) Publish(sessionID string, snap *world.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var data []byte
	for _, s := range h.spectators {
		if !s.wants(sessionID) {
			continue
		}
		if data == nil {
			var err error
			data, err = msgpack.Marshal(Envelope{Session: sessionID, Snapshot: snap})
			if err != nil {
				h.logger.Error("Marshal snapshot", "session", sessionID, "error", err)
				return
			}
		}

		select {
		case s.send <- data:
		default:
			if h.onDrop != nil {
				h.onDrop()
			}
		}
	}
}

// ServeHTTP upgrades the request to a spectator connection. The optional
// "session" query parameter restricts the stream to one game session.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	s := &spectator{
		id:      uuid.NewString(),
		session: r.URL.Query().Get("session"),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
	h.add(s)
	h.logger.Info("Spectator connected", "spectator", s.id, "session", s.session, "remote", r.RemoteAddr)

	go h.writePump(s)
	go h.readPump(s)
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.spectators {
		delete(h.spectators, id)
		close(s.send)
	}
}

func (h *Hub) add(s *spectator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.spectators[s.id] = s
}

func (h *Hub) remove(s *spectator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.spectators[s.id]; ok {
		delete(h.spectators, s.id)
		close(s.send)
	}
}

// readPump only services control frames; spectators never send input.
func (h *Hub) readPump(s *spectator) {
	defer func() {
		h.remove(s)
		s.conn.Close()
		h.logger.Info("Spectator disconnected", "spectator", s.id)
	}()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Spectator read error", "spectator", s.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(s *spectator) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				h.logger.Debug("Spectator write failed", "spectator", s.id, "error", err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
