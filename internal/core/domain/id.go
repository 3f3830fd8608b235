package domain

import (
	"github.com/google/uuid"
)

type UserID string

// RoomID is the label the transport layer groups a session's two
// connections under. Derived from the participant ids; not stable
// across restarts.
type RoomID string

func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}

func (id RoomID) String() string {
	return string(id)
}

// RoomIDFor derives the session label for a pairing. The requester
// side always comes first.
func RoomIDFor(requester, partner UserID) RoomID {
	return RoomID("room_" + string(requester) + "_" + string(partner))
}

type MessageID string

func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

func (id MessageID) String() string {
	return string(id)
}
