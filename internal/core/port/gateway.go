package port

import (
	"github.com/driftchat/drift/internal/core/domain"
)

// Gateway is the one-way send capability the engine uses to reach the
// transport layer. All sends are fire-and-forget: the core never
// waits for delivery and a failed send is the gateway's problem.
type Gateway interface {
	// Emit delivers an event to one connection.
	Emit(connKey string, event string, payload any)

	// Broadcast delivers an event to every connection.
	Broadcast(event string, payload any)

	// Join and Leave manage the room grouping used to scope relays.
	Join(connKey string, room domain.RoomID)
	Leave(connKey string, room domain.RoomID)

	// EmitRoom delivers an event to every connection in a room except
	// the sender.
	EmitRoom(room domain.RoomID, senderKey string, event string, payload any)
}
