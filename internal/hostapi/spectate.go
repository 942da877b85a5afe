package hostapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	maxSpectateConnectionsTotal = 500
	maxSpectateConnectionsPerIP = 10
)

var spectateUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if isAllowedOrigin(origin) {
			return true
		}
		log.Printf("spectate connection rejected from origin %q", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	if strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1") {
		return true
	}
	return false
}

type spectateClient struct {
	conn      *websocket.Conn
	ip        string
	sessionID string
}

// SpectateHub fans a match's tick-by-tick state out to read-only
// WebSocket subscribers, keyed by session id so a client only receives
// the match it asked for.
type SpectateHub struct {
	mu        sync.RWMutex
	clients   map[*websocket.Conn]*spectateClient
	broadcast chan spectateMessage
	limiter   *WebSocketRateLimiter
}

type spectateMessage struct {
	sessionID string
	payload   []byte
}

// NewSpectateHub constructs an idle hub. Call Run in a goroutine to
// start dispatching broadcasts.
func NewSpectateHub() *SpectateHub {
	return &SpectateHub{
		clients:   make(map[*websocket.Conn]*spectateClient),
		broadcast: make(chan spectateMessage, 256),
		limiter:   NewWebSocketRateLimiter(maxSpectateConnectionsPerIP),
	}
}

// Run dispatches broadcast messages to subscribed clients until stop
// is closed. It is meant to run for the lifetime of the
// host process.
func (h *SpectateHub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn, client := range h.clients {
				if client.sessionID != msg.sessionID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastTick publishes a tick snapshot for sessionID to every
// spectator currently subscribed to that match.
func (h *SpectateHub) BroadcastTick(sessionID string, tick uint32, state interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event":   "tick",
		"session": sessionID,
		"tick":    tick,
		"state":   state,
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- spectateMessage{sessionID: sessionID, payload: payload}:
	default:
		// Buffer full; drop rather than block the simulation loop.
	}
}

// ClientCount returns the number of currently connected spectators.
func (h *SpectateHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleSpectate upgrades the request to a WebSocket and subscribes it
// to sessionID's tick broadcasts until the client disconnects.
func (h *SpectateHub) HandleSpectate(sessionID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)

		h.mu.RLock()
		total := len(h.clients)
		h.mu.RUnlock()
		if total >= maxSpectateConnectionsTotal {
			RecordConnectionRejected("ws_limit")
			http.Error(w, "too many spectators", http.StatusServiceUnavailable)
			return
		}
		if !h.limiter.Allow(ip) {
			RecordConnectionRejected("ws_limit")
			http.Error(w, "too many connections from your address", http.StatusTooManyRequests)
			return
		}

		conn, err := spectateUpgrader.Upgrade(w, r, nil)
		if err != nil {
			h.limiter.Release(ip)
			return
		}

		client := &spectateClient{conn: conn, ip: ip, sessionID: sessionID}
		h.mu.Lock()
		h.clients[conn] = client
		h.mu.Unlock()
		UpdateSpectateConnections(h.ClientCount())

		go func() {
			defer func() {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				h.limiter.Release(ip)
				conn.Close()
				UpdateSpectateConnections(h.ClientCount())
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
