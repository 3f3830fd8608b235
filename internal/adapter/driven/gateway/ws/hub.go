package ws

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/driftchat/drift/internal/core/domain"
)

// Hub implements port.Gateway over a set of websocket clients. It
// tracks clients by connection key and the room each client currently
// belongs to (at most one: sessions are two-party and exclusive).
//
// Sends are fire-and-forget from the engine's point of view: a client
// whose send fails is closed and dropped, and the failure is only
// logged.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]Client
	rooms   map[domain.RoomID]map[string]Client
	member  map[string]domain.RoomID
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]Client),
		rooms:   make(map[domain.RoomID]map[string]Client),
		member:  make(map[string]domain.RoomID),
		log:     log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) Register(c Client) {
	h.mu.Lock()
	h.clients[c.Key()] = c
	h.mu.Unlock()
	h.log.Debug().Str("conn", c.Key()).Msg("client registered")
}

// Unregister drops the client and its room membership. No-op for
// unknown keys.
func (h *Hub) Unregister(key string) {
	h.mu.Lock()
	c, ok := h.clients[key]
	if ok {
		delete(h.clients, key)
		if room, in := h.member[key]; in {
			h.leaveLocked(key, room)
		}
	}
	h.mu.Unlock()

	if ok {
		c.Close()
		h.log.Debug().Str("conn", key).Msg("client unregistered")
	}
}

func (h *Hub) Emit(connKey string, event string, payload any) {
	h.mu.RLock()
	c := h.clients[connKey]
	h.mu.RUnlock()

	if c == nil {
		return
	}
	if err := c.Emit(event, payload); err != nil {
		h.log.Error().Err(err).Str("conn", connKey).Str("event", event).Msg("send failed")
		h.Unregister(connKey)
	}
}

func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	targets := make([]Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Emit(event, payload); err != nil {
			h.log.Error().Err(err).Str("conn", c.Key()).Str("event", event).Msg("broadcast send failed")
			h.Unregister(c.Key())
		}
	}
}

func (h *Hub) Join(connKey string, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connKey]
	if !ok {
		return
	}
	if prev, in := h.member[connKey]; in {
		h.leaveLocked(connKey, prev)
	}
	m := h.rooms[room]
	if m == nil {
		m = make(map[string]Client)
		h.rooms[room] = m
	}
	m[connKey] = c
	h.member[connKey] = room
}

func (h *Hub) Leave(connKey string, room domain.RoomID) {
	h.mu.Lock()
	h.leaveLocked(connKey, room)
	h.mu.Unlock()
}

func (h *Hub) EmitRoom(room domain.RoomID, senderKey string, event string, payload any) {
	h.mu.RLock()
	var targets []Client
	for key, c := range h.rooms[room] {
		if key == senderKey {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Emit(event, payload); err != nil {
			h.log.Error().Err(err).Str("conn", c.Key()).Str("event", event).Msg("room send failed")
			h.Unregister(c.Key())
		}
	}
}

// CloseAll disconnects every client. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]Client)
	h.rooms = make(map[domain.RoomID]map[string]Client)
	h.member = make(map[string]domain.RoomID)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

// leaveLocked removes the key from the room, dropping the room once
// empty. Caller holds the write lock.
func (h *Hub) leaveLocked(key string, room domain.RoomID) {
	if m, ok := h.rooms[room]; ok {
		delete(m, key)
		if len(m) == 0 {
			delete(h.rooms, room)
		}
	}
	if h.member[key] == room {
		delete(h.member, key)
	}
}
