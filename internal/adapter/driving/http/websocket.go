package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/driftchat/drift/internal/core/domain"
)

// WSClient wraps one websocket connection. The key is the transport
// connection identity; the engine's user ids are minted separately in
// the registry. Writes are serialized: emits for this connection can
// originate from other users' event handling.
type WSClient struct {
	key  string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *WSClient) Key() string {
	return c.key
}

func (c *WSClient) Emit(event string, payload any) error {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(domain.Envelope{Event: event, Data: data})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &WSClient{
		key:  uuid.New().String(),
		conn: conn,
	}

	l := h.log.With().Str("conn", client.key).Logger()
	l.Info().Msg("client connected")

	h.Hub.Register(client)
	userID := h.Match.Connect(client.key)
	l = l.With().Str("user_id", userID.String()).Logger()

	defer func() {
		l.Info().Msg("client disconnected")
		h.Match.Disconnect(client.key)
		h.Hub.Unregister(client.key)
	}()

	for {
		var env domain.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("unexpected close")
			}
			break
		}
		h.dispatch(client.key, env, l)
	}
}

// dispatch routes one inbound envelope into the engine. Unknown
// events and undecodable payloads are dropped; a misbehaving client
// must never affect anyone else.
func (h *Handler) dispatch(connKey string, env domain.Envelope, l zerolog.Logger) {
	switch env.Event {
	case domain.EventFindPartner:
		var p domain.FindPartnerPayload
		if !decode(env.Data, &p, env.Event, l) {
			return
		}
		h.Match.FindPartner(connKey, p.Interests)

	case domain.EventCancelSearch:
		h.Match.CancelSearch(connKey)

	case domain.EventSkipPartner:
		h.Match.SkipPartner(connKey)

	case domain.EventSignal:
		var p domain.SignalPayload
		if !decode(env.Data, &p, env.Event, l) {
			return
		}
		h.Match.Signal(connKey, p)

	case domain.EventSendMessage:
		var p domain.SendMessagePayload
		if !decode(env.Data, &p, env.Event, l) {
			return
		}
		h.Match.SendMessage(connKey, p)

	case domain.EventTyping:
		var p domain.TypingPayload
		if !decode(env.Data, &p, env.Event, l) {
			return
		}
		h.Match.Typing(connKey, p)

	case domain.EventTTTPlayAgain:
		// carries nothing beyond the room scope; relayed bodyless
		var scope domain.RoomScoped
		if !decode(env.Data, &scope, env.Event, l) {
			return
		}
		h.Match.Relay(connKey, scope.RoomID, env.Event, nil)

	case domain.EventRequestGame, domain.EventAcceptGame, domain.EventDeclineGame,
		domain.EventStartGame, domain.EventTTTMove,
		domain.EventWYRChoice, domain.EventWYRNextQuestion:
		var scope domain.RoomScoped
		if !decode(env.Data, &scope, env.Event, l) {
			return
		}
		h.Match.Relay(connKey, scope.RoomID, env.Event, env.Data)

	default:
		l.Debug().Str("event", env.Event).Msg("unknown event dropped")
	}
}

func decode(data json.RawMessage, into any, event string, l zerolog.Logger) bool {
	if len(data) == 0 {
		// Events like find-partner legitimately carry no payload.
		return true
	}
	if err := json.Unmarshal(data, into); err != nil {
		l.Debug().Err(err).Str("event", event).Msg("malformed payload dropped")
		return false
	}
	return true
}
