package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/driftchat/drift/internal/core/domain"
	"github.com/driftchat/drift/internal/core/port"
	"github.com/driftchat/drift/internal/metrics"
)

// MatchService is the engine behind the pair-chat server: it owns the
// connection registry and the waiting pool, pairs users into
// two-party sessions and tears sessions down when either side skips
// or disconnects.
//
// One mutex guards all state: a match or teardown mutates two users
// together, and the partner links must stay symmetric at every point
// another event could observe them. Notifications are handed to the
// gateway while the lock is still held, so each connection sees them
// in the order the mutations occurred; the gateway sends are one-way
// and never awaited.
type MatchService struct {
	mu      sync.Mutex
	gateway port.Gateway
	reg     *registry
	pool    *waitingPool
	log     zerolog.Logger
}

func NewMatchService(gateway port.Gateway, log zerolog.Logger) *MatchService {
	return &MatchService{
		gateway: gateway,
		reg:     newRegistry(),
		pool:    newWaitingPool(),
		log:     log.With().Str("component", "match").Logger(),
	}
}

// selectPartner picks a partner for the requester from the pool, or
// nil when no candidate exists. Greedy two-tier first-fit: the first
// candidate in arrival order sharing an interest wins, then the first
// candidate of any kind. The chosen partner is removed from the pool
// as part of selection. Greedy, not a maximum matching.
func selectPartner(requester *domain.User, pool *waitingPool) *domain.User {
	if len(requester.Interests) > 0 {
		for _, candidate := range pool.scan() {
			if candidate.ID == requester.ID {
				continue
			}
			if requester.SharesInterest(candidate) {
				pool.removeByID(candidate.ID)
				return candidate
			}
		}
	}
	for _, candidate := range pool.scan() {
		if candidate.ID == requester.ID {
			continue
		}
		pool.removeByID(candidate.ID)
		return candidate
	}
	return nil
}

// Connect registers a fresh user for the given transport connection
// and reports its id and the new online count.
func (s *MatchService) Connect(connKey string) domain.UserID {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.NewUser(connKey)
	s.reg.add(user)
	online := s.reg.size()

	metrics.ConnectedUsers.Set(float64(online))
	s.gateway.Emit(connKey, domain.EventUserID, domain.UserIDPayload{UserID: user.ID})
	s.gateway.Broadcast(domain.EventOnlineCount, domain.OnlineCountPayload{Count: online})

	s.log.Debug().Str("user_id", user.ID.String()).Int("online", online).Msg("user registered")
	return user.ID
}

// FindPartner attempts to pair the user, enqueueing it when nobody
// suitable is waiting. Re-requesting replaces any prior pool entry.
// Ignored while the user is still in a session; clients skip first.
func (s *MatchService) FindPartner(connKey string, interests []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.reg.byConnKey(connKey)
	if user == nil {
		s.log.Debug().Str("conn", connKey).Msg("find-partner from unknown connection")
		return
	}
	if user.InSession {
		s.log.Debug().Str("user_id", user.ID.String()).Msg("find-partner while paired ignored")
		return
	}

	s.pool.removeByID(user.ID)
	user.Interests = interests

	partner := selectPartner(user, s.pool)
	if partner == nil {
		s.pool.enqueue(user)
		metrics.WaitingUsers.Set(float64(s.pool.len()))
		s.gateway.Emit(connKey, domain.EventWaiting, nil)
		return
	}

	room := establish(user, partner)
	metrics.WaitingUsers.Set(float64(s.pool.len()))
	metrics.MatchesTotal.Inc()

	s.gateway.Join(user.ConnKey, room)
	s.gateway.Join(partner.ConnKey, room)

	// The requester is the initiator: exactly one side must start the
	// peer-connection handshake.
	s.gateway.Emit(user.ConnKey, domain.EventPartnerFound, domain.PartnerFoundPayload{
		PartnerID: partner.ID,
		RoomID:    room,
		Initiator: true,
	})
	s.gateway.Emit(partner.ConnKey, domain.EventPartnerFound, domain.PartnerFoundPayload{
		PartnerID: user.ID,
		RoomID:    room,
		Initiator: false,
	})

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("partner_id", partner.ID.String()).
		Str("room", room.String()).
		Msg("partners matched")
}

// CancelSearch dequeues a waiting user. Notified only when an entry
// was actually removed.
func (s *MatchService) CancelSearch(connKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.reg.byConnKey(connKey)
	if user == nil {
		return
	}
	if !s.pool.removeByID(user.ID) {
		return
	}

	metrics.WaitingUsers.Set(float64(s.pool.len()))
	s.gateway.Emit(connKey, domain.EventSearchCancelled, nil)
}

// SkipPartner ends the user's current session. The partner, if still
// registered, learns its partner left; the requester's chat ends.
// No-op when not paired.
func (s *MatchService) SkipPartner(connKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.reg.byConnKey(connKey)
	if user == nil || !user.InSession {
		return
	}
	partner, room := s.teardown(user)

	s.gateway.Leave(connKey, room)
	if partner != nil {
		s.gateway.Leave(partner.ConnKey, room)
		s.gateway.Emit(partner.ConnKey, domain.EventPartnerDisconnected, nil)
	}
	s.gateway.Emit(connKey, domain.EventChatEnded, nil)

	s.log.Debug().Str("user_id", user.ID.String()).Str("room", room.String()).Msg("session skipped")
}

// Disconnect removes the user entirely: tears down its session if
// paired, dequeues it if waiting, and drops it from the registry.
// Safe to call for connections that were never registered.
func (s *MatchService) Disconnect(connKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.reg.byConnKey(connKey)
	if user == nil {
		return
	}

	var partner *domain.User
	var room domain.RoomID
	if user.InSession {
		partner, room = s.teardown(user)
	}
	s.pool.removeByID(user.ID)
	s.reg.remove(connKey)
	online := s.reg.size()

	metrics.ConnectedUsers.Set(float64(online))
	metrics.WaitingUsers.Set(float64(s.pool.len()))

	if partner != nil {
		s.gateway.Leave(partner.ConnKey, room)
		s.gateway.Emit(partner.ConnKey, domain.EventPartnerDisconnected, nil)
	}
	s.gateway.Broadcast(domain.EventOnlineCount, domain.OnlineCountPayload{Count: online})

	s.log.Debug().Str("user_id", user.ID.String()).Int("online", online).Msg("user removed")
}

// Online reports the number of registered users.
func (s *MatchService) Online() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.size()
}

// Waiting reports the number of users in the pool.
func (s *MatchService) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.len()
}

// establish links the two users symmetrically and returns the session
// label. Caller holds the engine lock.
func establish(requester, partner *domain.User) domain.RoomID {
	room := domain.RoomIDFor(requester.ID, partner.ID)
	requester.PartnerID = partner.ID
	partner.PartnerID = requester.ID
	requester.InSession = true
	partner.InSession = true
	requester.Room = room
	partner.Room = room
	return room
}

// teardown clears the pairing on both sides and returns the partner
// when it is still registered. A stale partner reference (disconnect
// race) means there is nobody left to notify, not an error. Caller
// holds the engine lock.
func (s *MatchService) teardown(user *domain.User) (*domain.User, domain.RoomID) {
	room := user.Room
	partner := s.reg.byUserID(user.PartnerID)

	user.InSession = false
	user.PartnerID = ""
	user.Room = ""

	if partner != nil {
		partner.InSession = false
		partner.PartnerID = ""
		partner.Room = ""
	}
	return partner, room
}
