package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection with user context.
type Client struct {
	UsuarioID uint
	Rol       string
	Send      chan []byte
	Hub       *Hub
	mu        sync.Mutex
	closed    bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
}

// Hub maintains the set of connected clients for notification push.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// usuarioID -> clients (one user can have multiple connections)
	byUsuario map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		byUsuario: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if h.byUsuario[c.UsuarioID] == nil {
		h.byUsuario[c.UsuarioID] = make(map[*Client]struct{})
	}
	h.byUsuario[c.UsuarioID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byUsuario[c.UsuarioID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byUsuario, c.UsuarioID)
		}
	}
}

func (h *Hub) BroadcastToUser(usuarioID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byUsuario[usuarioID]
	if m == nil {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) BroadcastAll(payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
