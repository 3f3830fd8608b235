package service

import (
	"github.com/driftchat/drift/internal/core/domain"
	"github.com/driftchat/drift/internal/metrics"
)

// In-session event relay. Every event here is scoped to the sender's
// room and delivered to everyone in it except the sender, which in a
// two-party session is exactly the partner. Events from users not in
// a session with the claimed room are dropped. The engine lock is
// held through the emit so a relay can never be delivered after the
// teardown notification for the same session.

// Relay forwards an event payload unchanged under the same event
// name. Used for the whole mini-game family; no per-game logic.
func (s *MatchService) Relay(connKey string, roomID string, event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.sessionRoomLocked(connKey, roomID)
	if !ok {
		return
	}
	metrics.RelayedEvents.WithLabelValues(event).Inc()
	s.gateway.EmitRoom(room, connKey, event, payload)
}

// SendMessage stamps the chat message with a fresh id, the sender's
// user id and a server-side timestamp, then relays it.
func (s *MatchService) SendMessage(connKey string, p domain.SendMessagePayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.sessionRoomLocked(connKey, p.RoomID)
	if !ok {
		return
	}
	msg := domain.NewMessage(s.reg.byConnKey(connKey).ID, p.Message)

	metrics.RelayedEvents.WithLabelValues(domain.EventSendMessage).Inc()
	s.gateway.EmitRoom(room, connKey, domain.EventReceiveMessage, msg)
}

// Signal relays a WebRTC signaling envelope opaquely, tagged with the
// sender's connection reference so the receiving client can answer.
func (s *MatchService) Signal(connKey string, p domain.SignalPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.sessionRoomLocked(connKey, p.RoomID)
	if !ok {
		return
	}
	metrics.RelayedEvents.WithLabelValues(domain.EventSignal).Inc()
	s.gateway.EmitRoom(room, connKey, domain.EventSignal, domain.SignalRelayPayload{
		Signal: p.Signal,
		From:   connKey,
	})
}

// Typing relays a typing indicator to the partner.
func (s *MatchService) Typing(connKey string, p domain.TypingPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.sessionRoomLocked(connKey, p.RoomID)
	if !ok {
		return
	}
	metrics.RelayedEvents.WithLabelValues(domain.EventTyping).Inc()
	s.gateway.EmitRoom(room, connKey, domain.EventPartnerTyping, domain.PartnerTypingPayload{
		IsTyping: p.IsTyping,
	})
}

// sessionRoomLocked validates that the connection belongs to a user
// in a session with the claimed room label. Caller holds the engine
// lock.
func (s *MatchService) sessionRoomLocked(connKey, roomID string) (domain.RoomID, bool) {
	user := s.reg.byConnKey(connKey)
	if user == nil || !user.InSession || user.Room.String() != roomID {
		return "", false
	}
	return user.Room, true
}
