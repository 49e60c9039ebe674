package supplier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New(CreateParams{
		ID:    1,
		Name:  "Metro Cash & Carry",
		Email: "contact@metro.fr",
		Phone: "+33 1 23 45 67 89",
	})

	assert.Equal(t, int64(1), s.ID())
	assert.Equal(t, "Metro Cash & Carry", s.Name())
	// approval is a deliberate gate: never set at creation
	assert.True(t, s.IsActive())
	assert.False(t, s.IsApproved())
	assert.False(t, s.CanReceiveOrders())
	assert.False(t, s.CreatedAt().IsZero())
}

func TestApprovalGate(t *testing.T) {
	s := New(CreateParams{ID: 1, Name: "Rungis Express"})

	approved := s.Approve()
	assert.True(t, approved.IsApproved())
	assert.True(t, approved.CanReceiveOrders())
	// original unchanged
	assert.False(t, s.IsApproved())

	deactivated := approved.Deactivate()
	assert.False(t, deactivated.IsActive())
	assert.False(t, deactivated.CanReceiveOrders())
	assert.True(t, deactivated.IsApproved())

	reactivated := deactivated.Reactivate()
	assert.True(t, reactivated.IsActive())
	assert.True(t, reactivated.CanReceiveOrders())
}

func TestEqualByIdentity(t *testing.T) {
	a := New(CreateParams{ID: 1, Name: "Pomona"})
	b := New(CreateParams{ID: 1, Name: "Transgourmet"})
	c := New(CreateParams{ID: 2, Name: "Pomona"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestRehydrate(t *testing.T) {
	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	s := Rehydrate(Props{
		ID:         5,
		Name:       "Transgourmet",
		Email:      "service@transgourmet.fr",
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  created,
		UpdatedAt:  created,
	})

	assert.True(t, s.CanReceiveOrders())
	assert.Equal(t, created, s.CreatedAt())
}
