package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type ghostCell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

// ghostPayload is one step of an AI search: a scored root candidate, or the
// final pick when Final is set.
type ghostPayload struct {
	SessionID  string     `json:"session_id,omitempty"`
	Mode       string     `json:"mode"`
	Candidate  *ghostCell `json:"candidate,omitempty"`
	Score      int        `json:"score"`
	Best       *ghostCell `json:"best,omitempty"`
	BestScore  int        `json:"best_score"`
	Depth      int        `json:"depth,omitempty"`
	Nodes      int        `json:"nodes,omitempty"`
	NextPlayer int        `json:"next_player,omitempty"`
	Active     bool       `json:"active"`
	Final      bool       `json:"final,omitempty"`
}

type GhostClient struct {
	hub  *GhostHub
	conn *websocket.Conn
	send chan []byte
}

// GhostHub streams AI search progress to /ws/search clients.
type GhostHub struct {
	mu        sync.Mutex
	clients   map[*GhostClient]struct{}
	broadcast chan ghostPayload
}

func NewGhostHub() *GhostHub {
	return &GhostHub{
		clients:   make(map[*GhostClient]struct{}),
		broadcast: make(chan ghostPayload, 256),
	}
}

func (h *GhostHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "search", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *GhostHub) Register(c *GhostClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	wsClients.WithLabelValues("search").Inc()
}

// Publish never blocks the search; progress is dropped when the queue is full.
func (h *GhostHub) Publish(payload ghostPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *GhostHub) Unregister(c *GhostClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		wsClients.WithLabelValues("search").Dec()
	}
}

func (h *GhostHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *GhostClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveGhostWS(hub *GhostHub, w http.ResponseWriter, r *http.Request) {
	conn, err := newUpgrader().Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &GhostClient{hub: hub, conn: conn, send: make(chan []byte, 64)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
