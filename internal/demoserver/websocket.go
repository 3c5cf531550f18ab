package demoserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local demo tool, not a hardened public endpoint
	},
}

// WSMessage is one event pushed to every connected demo client.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ProgressPayload reports how far a transmission has advanced through the
// frame assembler.
type ProgressPayload struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Progress       float64 `json:"progress"` // 0.0 to 1.0
	SymbolsEmitted int     `json:"symbolsEmitted,omitempty"`
	TotalSymbols   int     `json:"totalSymbols,omitempty"`
}

// WSHub fans status/progress/log events out to every connected client.
type WSHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewWSHub creates an empty hub.
func NewWSHub() *WSHub {
	return &WSHub{clients: make(map[*websocket.Conn]bool)}
}

// AddClient registers a newly upgraded connection.
func (h *WSHub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("demoserver: client connected (%d total)", len(h.clients))
}

// RemoveClient unregisters and closes a connection.
func (h *WSHub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("demoserver: client disconnected (%d remaining)", len(h.clients))
}

// Broadcast sends msg to every connected client, dropping (and scheduling
// removal of) any client whose write fails.
func (h *WSHub) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("demoserver: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("demoserver: write error: %v", err)
			go h.RemoveClient(conn)
		}
	}
}

// BroadcastProgress reports transmission progress.
func (h *WSHub) BroadcastProgress(status, message string, symbolsEmitted, totalSymbols int) {
	progress := 0.0
	if totalSymbols > 0 {
		progress = float64(symbolsEmitted) / float64(totalSymbols)
	}
	h.Broadcast(WSMessage{
		Type: "progress",
		Payload: ProgressPayload{
			Status:         status,
			Message:        message,
			Progress:       progress,
			SymbolsEmitted: symbolsEmitted,
			TotalSymbols:   totalSymbols,
		},
	})
}

// BroadcastStatus reports a coarse transmission-lifecycle event.
func (h *WSHub) BroadcastStatus(status, message string) {
	h.Broadcast(WSMessage{
		Type: "status",
		Payload: map[string]string{
			"status":  status,
			"message": message,
		},
	})
}

// BroadcastLog forwards a free-form log line to connected clients.
func (h *WSHub) BroadcastLog(level, message string) {
	h.Broadcast(WSMessage{
		Type: "log",
		Payload: map[string]string{
			"level":   level,
			"message": message,
		},
	})
}
