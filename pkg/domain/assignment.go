package domain

import (
	"fmt"
	"maps"
	"slices"
)

// Assignment maps each giver id to the receiver id they buy a gift for.
// It always forms a single cycle over every participant and is never
// modified after construction.
type Assignment struct {
	order     []string
	receivers map[string]string
}

// NewAssignment builds the assignment in which order[i] gives to
// order[(i+1) mod n]. The slice is copied.
func NewAssignment(order []string) (Assignment, error) {
	if len(order) < MinParticipants {
		return Assignment{}, fmt.Errorf("%w, found %d", ErrInsufficientParticipants, len(order))
	}
	receivers := make(map[string]string, len(order))
	for i, giver := range order {
		if _, dup := receivers[giver]; dup {
			return Assignment{}, fmt.Errorf("%w: %q", ErrDuplicateParticipant, giver)
		}
		receivers[giver] = order[(i+1)%len(order)]
	}
	return Assignment{order: slices.Clone(order), receivers: receivers}, nil
}

// Len returns the number of participants in the cycle.
func (a Assignment) Len() int { return len(a.order) }

// Receiver returns who giver gives to.
func (a Assignment) Receiver(giver string) (string, bool) {
	r, ok := a.receivers[giver]
	return r, ok
}

// Order returns the cycle starting from the first giver drawn.
func (a Assignment) Order() []string { return slices.Clone(a.order) }

// Pairs returns a copy of the giver -> receiver map.
func (a Assignment) Pairs() map[string]string { return maps.Clone(a.receivers) }

// Chain follows giver -> receiver from start for Len steps and returns the
// ids visited, start first. It returns nil if start is not a giver.
func (a Assignment) Chain(start string) []string {
	if _, ok := a.receivers[start]; !ok {
		return nil
	}
	chain := make([]string, 0, len(a.order))
	cur := start
	for range a.order {
		chain = append(chain, cur)
		cur = a.receivers[cur]
	}
	return chain
}

// IsSingleCycle reports whether following receivers from any giver returns
// to it after exactly Len steps and not before.
func (a Assignment) IsSingleCycle() bool {
	n := len(a.order)
	if n < MinParticipants || len(a.receivers) != n {
		return false
	}
	start := a.order[0]
	cur := start
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		if _, dup := seen[cur]; dup {
			return false
		}
		seen[cur] = struct{}{}
		next, ok := a.receivers[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return cur == start && len(seen) == n
}
