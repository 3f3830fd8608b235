package service

import (
	"github.com/driftchat/drift/internal/core/domain"
)

// waitingPool is the FIFO queue of users seeking a partner. At most
// one entry per user id. Pool sizes stay small for a single-process
// service, so a plain slice with linear removal is enough.
type waitingPool struct {
	users []*domain.User
}

func newWaitingPool() *waitingPool {
	return &waitingPool{}
}

// enqueue appends the user in arrival order. No-op if already queued.
func (p *waitingPool) enqueue(u *domain.User) {
	for _, q := range p.users {
		if q.ID == u.ID {
			return
		}
	}
	p.users = append(p.users, u)
}

// removeByID dequeues the user, reporting whether an entry existed.
func (p *waitingPool) removeByID(id domain.UserID) bool {
	for i, q := range p.users {
		if q.ID == id {
			p.users = append(p.users[:i], p.users[i+1:]...)
			return true
		}
	}
	return false
}

// scan returns the queue in arrival order. Callers must not mutate
// through it while scanning.
func (p *waitingPool) scan() []*domain.User {
	return p.users
}

func (p *waitingPool) len() int {
	return len(p.users)
}
