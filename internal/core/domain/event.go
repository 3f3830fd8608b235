package domain

import "encoding/json"

// Event names on the wire. Inbound and outbound share one envelope
// shape: {"event": <name>, "data": <payload>}.
const (
	// inbound
	EventFindPartner  = "find-partner"
	EventCancelSearch = "cancel-search"
	EventSkipPartner  = "skip-partner"
	EventSignal       = "webrtc-signal"
	EventSendMessage  = "send-message"
	EventTyping       = "typing"

	EventRequestGame     = "request-game"
	EventAcceptGame      = "accept-game"
	EventDeclineGame     = "decline-game"
	EventStartGame       = "start-game"
	EventTTTMove         = "tic-tac-toe-move"
	EventTTTPlayAgain    = "tic-tac-toe-play-again"
	EventWYRChoice       = "wyr-choice"
	EventWYRNextQuestion = "wyr-next-question"

	// outbound
	EventUserID              = "user-id"
	EventOnlineCount         = "online-count"
	EventPartnerFound        = "partner-found"
	EventWaiting             = "waiting"
	EventSearchCancelled     = "search-cancelled"
	EventPartnerDisconnected = "partner-disconnected"
	EventChatEnded           = "chat-ended"
	EventReceiveMessage      = "receive-message"
	EventPartnerTyping       = "partner-typing"
)

// Envelope is the wire frame for every websocket event, both
// directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads. The signal body is opaque to the server.

type FindPartnerPayload struct {
	Interests []string `json:"interests,omitempty"`
}

type SignalPayload struct {
	Signal json.RawMessage `json:"signal"`
	RoomID string          `json:"roomId"`
}

type SendMessagePayload struct {
	Message string `json:"message"`
	RoomID  string `json:"roomId"`
}

type TypingPayload struct {
	RoomID   string `json:"roomId"`
	IsTyping bool   `json:"isTyping"`
}

// RoomScoped extracts just the room label from any in-session event,
// so game payloads can be relayed without decoding the rest.
type RoomScoped struct {
	RoomID string `json:"roomId"`
}

// Outbound payloads.

type PartnerFoundPayload struct {
	PartnerID UserID `json:"partnerId"`
	RoomID    RoomID `json:"roomId"`
	Initiator bool   `json:"initiator"`
}

type OnlineCountPayload struct {
	Count int `json:"count"`
}

type UserIDPayload struct {
	UserID UserID `json:"userId"`
}

type PartnerTypingPayload struct {
	IsTyping bool `json:"isTyping"`
}

type SignalRelayPayload struct {
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from"`
}
