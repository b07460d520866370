package booking

import (
	"fmt"
	"strings"

	"shesafe/internal/domain"
)

type Actor string

const (
	ActorUser   Actor = "user"
	ActorVendor Actor = "vendor"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  domain.BookingStatus
	To    domain.BookingStatus
	Actor Actor
}

// transitions is the authoritative booking state machine. Completed and cancelled are terminal.
var transitions = []Transition{
	{From: domain.BookingPending, To: domain.BookingCompleted, Actor: ActorVendor},
	{From: domain.BookingPending, To: domain.BookingConfirmed, Actor: ActorVendor},
	{From: domain.BookingConfirmed, To: domain.BookingCompleted, Actor: ActorVendor},
	{From: domain.BookingPending, To: domain.BookingCancelled, Actor: ActorUser},
	{From: domain.BookingPending, To: domain.BookingCancelled, Actor: ActorVendor},
	{From: domain.BookingConfirmed, To: domain.BookingCancelled, Actor: ActorUser},
	{From: domain.BookingConfirmed, To: domain.BookingCancelled, Actor: ActorVendor},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(transitions))
	for _, t := range transitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status domain.BookingStatus) []domain.BookingStatus {
	var nexts []domain.BookingStatus
	seen := map[domain.BookingStatus]bool{}
	for _, t := range transitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition reports whether actor may move a booking from one status to another.
// The returned error is an ErrInvalidTransition carrying the allowed next states.
func CanTransition(from, to domain.BookingStatus, actor Actor) error {
	if transitionSet[Transition{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s not allowed for %s (valid from %s: %s)",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status domain.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// AllTransitions returns a copy of the state machine table.
func AllTransitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}
