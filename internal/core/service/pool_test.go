package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftchat/drift/internal/core/domain"
)

func TestWaitingPool_FIFOOrder(t *testing.T) {
	p := newWaitingPool()
	a := domain.NewUser("a")
	b := domain.NewUser("b")
	c := domain.NewUser("c")

	p.enqueue(a)
	p.enqueue(b)
	p.enqueue(c)

	got := p.scan()
	assert.Equal(t, []domain.UserID{a.ID, b.ID, c.ID}, []domain.UserID{got[0].ID, got[1].ID, got[2].ID})
}

func TestWaitingPool_EnqueueIdempotent(t *testing.T) {
	p := newWaitingPool()
	a := domain.NewUser("a")

	p.enqueue(a)
	p.enqueue(a)

	assert.Equal(t, 1, p.len())
}

func TestWaitingPool_RemoveByID(t *testing.T) {
	p := newWaitingPool()
	a := domain.NewUser("a")
	b := domain.NewUser("b")
	p.enqueue(a)
	p.enqueue(b)

	assert.True(t, p.removeByID(a.ID))
	assert.False(t, p.removeByID(a.ID), "second removal is a no-op")
	assert.Equal(t, 1, p.len())
	assert.Equal(t, b.ID, p.scan()[0].ID)
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := newRegistry()
	u := domain.NewUser("conn-a")

	r.add(u)
	assert.Equal(t, 1, r.size())
	assert.Same(t, u, r.byConnKey("conn-a"))
	assert.Same(t, u, r.byUserID(u.ID))

	r.remove("conn-a")
	assert.Equal(t, 0, r.size())
	assert.Nil(t, r.byConnKey("conn-a"))
	assert.Nil(t, r.byUserID(u.ID))

	// late duplicate disconnect
	r.remove("conn-a")
	assert.Equal(t, 0, r.size())
}

func TestRegistry_EmptyPartnerIDResolvesToNil(t *testing.T) {
	r := newRegistry()
	assert.Nil(t, r.byUserID(""))
}
