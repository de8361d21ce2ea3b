package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/scoreboard"
	"github.com/wonny/tradetips/pkg/logger"
)

const writeWait = 10 * time.Second

// ScoreboardWS pushes scoreboard updates to websocket subscribers.
// Each client gets the current board on connect and every refreshed
// board afterwards.
type ScoreboardWS struct {
	board    *scoreboard.Service
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]*sync.Mutex
}

// NewScoreboardWS creates a new scoreboard websocket handler
func NewScoreboardWS(board *scoreboard.Service, log *logger.Logger) *ScoreboardWS {
	return &ScoreboardWS{
		board:  board,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Serve upgrades the connection and subscribes it to board updates
// GET /ws/scoreboard
func (h *ScoreboardWS) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.register(conn)
	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Scoreboard subscriber connected")

	// Push the current board right away so the client has data before
	// the next scheduled refresh.
	if board, err := h.board.Board(r.Context()); err == nil {
		h.send(conn, board)
	} else {
		h.logger.WithError(err).Warn("Failed to send initial scoreboard")
	}

	// The read loop only exists to notice the peer going away.
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast pushes a refreshed board to every subscriber.
func (h *ScoreboardWS) Broadcast(board *contracts.Board) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if !h.send(c, board) {
			h.unregister(c)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *ScoreboardWS) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// send serializes writes per connection; gorilla allows one writer at a
// time.
func (h *ScoreboardWS) send(conn *websocket.Conn, board *contracts.Board) bool {
	h.mu.Lock()
	wmu, ok := h.conns[conn]
	h.mu.Unlock()
	if !ok {
		return false
	}

	wmu.Lock()
	defer wmu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(board); err != nil {
		h.logger.WithError(err).Debug("Scoreboard push failed, dropping subscriber")
		return false
	}
	return true
}

func (h *ScoreboardWS) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *ScoreboardWS) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
