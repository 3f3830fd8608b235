package service

import (
	"github.com/driftchat/drift/internal/core/domain"
)

// registry maps live transport connections to their User records.
// It is the source of truth for "is this user known to the server"
// and the only way a partner reference is resolved back to a
// reachable connection. Owned by MatchService; callers hold its lock.
type registry struct {
	byConn map[string]*domain.User
	byID   map[domain.UserID]*domain.User
}

func newRegistry() *registry {
	return &registry{
		byConn: make(map[string]*domain.User),
		byID:   make(map[domain.UserID]*domain.User),
	}
}

func (r *registry) add(u *domain.User) {
	r.byConn[u.ConnKey] = u
	r.byID[u.ID] = u
}

func (r *registry) byConnKey(key string) *domain.User {
	return r.byConn[key]
}

func (r *registry) byUserID(id domain.UserID) *domain.User {
	if id == "" {
		return nil
	}
	return r.byID[id]
}

// remove deletes the entry for a connection. No-op when absent, so a
// duplicate or late disconnect is harmless.
func (r *registry) remove(key string) {
	u, ok := r.byConn[key]
	if !ok {
		return
	}
	delete(r.byConn, key)
	delete(r.byID, u.ID)
}

func (r *registry) size() int {
	return len(r.byConn)
}
