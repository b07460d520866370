package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shesafe/internal/domain"
)

func TestCanTransition_Table(t *testing.T) {
	allowed := []Transition{
		{domain.BookingPending, domain.BookingCompleted, ActorVendor},
		{domain.BookingPending, domain.BookingConfirmed, ActorVendor},
		{domain.BookingConfirmed, domain.BookingCompleted, ActorVendor},
		{domain.BookingPending, domain.BookingCancelled, ActorUser},
		{domain.BookingConfirmed, domain.BookingCancelled, ActorVendor},
	}
	for _, tr := range allowed {
		assert.NoError(t, CanTransition(tr.From, tr.To, tr.Actor), "%v", tr)
	}

	denied := []Transition{
		{domain.BookingPending, domain.BookingCompleted, ActorUser},
		{domain.BookingPending, domain.BookingConfirmed, ActorUser},
		{domain.BookingCompleted, domain.BookingCompleted, ActorVendor},
		{domain.BookingCompleted, domain.BookingCancelled, ActorUser},
		{domain.BookingCancelled, domain.BookingPending, ActorVendor},
		{domain.BookingCancelled, domain.BookingCompleted, ActorVendor},
	}
	for _, tr := range denied {
		assert.ErrorIs(t, CanTransition(tr.From, tr.To, tr.Actor), ErrInvalidTransition, "%v", tr)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.Empty(t, ValidTransitionsFrom(domain.BookingCompleted))
	assert.Empty(t, ValidTransitionsFrom(domain.BookingCancelled))
	assert.ElementsMatch(t,
		[]domain.BookingStatus{domain.BookingCompleted, domain.BookingConfirmed, domain.BookingCancelled},
		ValidTransitionsFrom(domain.BookingPending))
}

func TestAllTransitions_IsACopy(t *testing.T) {
	all := AllTransitions()
	all[0].Actor = ActorUser
	assert.NoError(t, CanTransition(domain.BookingPending, domain.BookingCompleted, ActorVendor))
}
