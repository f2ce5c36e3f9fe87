// Package match computes the gift cycle: every participant gives to exactly
// one other, all participants form a single loop, and nobody is assigned a
// receiver on their exclusion list.
package match

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/naveenspark/santa/pkg/domain"
)

const (
	// DefaultMaxAttempts is how many random cycles are tried before giving up.
	DefaultMaxAttempts = 1000
	// DefaultMaxSearchNodes bounds the backtracking search.
	DefaultMaxSearchNodes = 1_000_000
)

var (
	// ErrInsufficientParticipants is returned for fewer than two participants.
	ErrInsufficientParticipants = domain.ErrInsufficientParticipants
	// ErrDuplicateParticipant is returned when two participants share an id.
	ErrDuplicateParticipant = domain.ErrDuplicateParticipant
)

// UnsatisfiableConstraintsError means no valid cycle was found. Unless
// Proven is set a valid cycle may still exist: either only the random
// phase ran, or the backtracking search hit its node limit (SearchNodes > 0).
type UnsatisfiableConstraintsError struct {
	Participants int
	Attempts     int
	SearchNodes  int
	Proven       bool
}

func (e *UnsatisfiableConstraintsError) Error() string {
	if e.Proven {
		return fmt.Sprintf("no gift cycle over %d participants satisfies the exclusion rules; relax some exclusions", e.Participants)
	}
	if e.SearchNodes > 0 {
		return fmt.Sprintf("could not generate a gift cycle that respects the exclusion rules after %d attempts and %d search steps; check your exclusion settings", e.Attempts, e.SearchNodes)
	}
	return fmt.Sprintf("could not generate a gift cycle that respects the exclusion rules after %d attempts; check your exclusion settings", e.Attempts)
}

// IsUnsatisfiable reports whether err (or any wrapped error) is an UnsatisfiableConstraintsError.
func IsUnsatisfiable(err error) bool {
	var u *UnsatisfiableConstraintsError
	return errors.As(err, &u)
}

// Source yields uniform integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Options tunes the search.
type Options struct {
	// MaxAttempts bounds the random phase. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// Exhaustive runs a backtracking search once the random budget is
	// spent. A failure within MaxSearchNodes is a proof that no cycle exists.
	Exhaustive bool
	// MaxSearchNodes bounds the backtracking search. Zero means
	// DefaultMaxSearchNodes.
	MaxSearchNodes int
	Logger         *zap.Logger
}

// Matcher draws gift cycles. It holds no state between calls other than its
// randomness source.
type Matcher struct {
	src         Source
	maxAttempts int
	exhaustive  bool
	maxNodes    int
	log         *zap.Logger
}

// New creates a Matcher. A nil src uses the process-wide math/rand/v2 source.
func New(src Source, opts Options) *Matcher {
	if src == nil {
		src = globalSource{}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.MaxSearchNodes <= 0 {
		opts.MaxSearchNodes = DefaultMaxSearchNodes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Matcher{
		src:         src,
		maxAttempts: opts.MaxAttempts,
		exhaustive:  opts.Exhaustive,
		maxNodes:    opts.MaxSearchNodes,
		log:         opts.Logger,
	}
}

// Assign returns a single-cycle assignment over participants in which no
// giver's receiver is on the giver's exclusion list. The first valid
// candidate is returned. On error the returned Assignment is the zero value.
func (m *Matcher) Assign(participants []domain.Participant) (domain.Assignment, error) {
	if err := domain.CheckIDs(participants); err != nil {
		return domain.Assignment{}, fmt.Errorf("match.Assign: %w", err)
	}

	n := len(participants)
	order := make([]int, n)
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		for i := range order {
			order[i] = i
		}
		m.shuffle(order)
		if respectsExclusions(participants, order) {
			m.log.Debug("gift cycle found",
				zap.Int("participants", n),
				zap.Int("attempt", attempt))
			return build(participants, order)
		}
	}

	if !m.exhaustive {
		m.log.Warn("random search exhausted", zap.Int("attempts", m.maxAttempts))
		return domain.Assignment{}, fmt.Errorf("match.Assign: %w",
			&UnsatisfiableConstraintsError{Participants: n, Attempts: m.maxAttempts})
	}

	m.log.Debug("random search exhausted, falling back to backtracking",
		zap.Int("attempts", m.maxAttempts))
	found, nodes, err := m.search(participants)
	if err != nil {
		var u *UnsatisfiableConstraintsError
		if errors.As(err, &u) {
			u.Participants, u.Attempts = n, m.maxAttempts
		}
		return domain.Assignment{}, fmt.Errorf("match.Assign: %w", err)
	}
	m.log.Debug("gift cycle found by backtracking", zap.Int("search_nodes", nodes))
	return build(participants, found)
}

// shuffle is an unbiased Fisher-Yates shuffle driven by m.src.
func (m *Matcher) shuffle(s []int) {
	for i := len(s) - 1; i > 0; i-- {
		j := m.src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// respectsExclusions checks every giver against the next entry in the cycle.
func respectsExclusions(ps []domain.Participant, order []int) bool {
	n := len(order)
	for i, g := range order {
		r := order[(i+1)%n]
		if ps[g].Excludes(ps[r].ID) {
			return false
		}
	}
	return true
}

// search looks for a Hamiltonian cycle in the allowed-giving graph by
// backtracking. The cycle is anchored at participant 0 since any rotation
// is the same assignment; candidates are tried in shuffled order so the
// result is still random among reachable solutions. A participant with no
// allowed receiver or no allowed giver proves infeasibility up front, and
// the walk stops after m.maxNodes visited nodes without a proof.
func (m *Matcher) search(ps []domain.Participant) ([]int, int, error) {
	n := len(ps)
	allowed := func(g, r int) bool {
		return g != r && !ps[g].Excludes(ps[r].ID)
	}

	outDeg := make([]int, n)
	inDeg := make([]int, n)
	for g := range n {
		for r := range n {
			if allowed(g, r) {
				outDeg[g]++
				inDeg[r]++
			}
		}
	}
	for i := range n {
		if outDeg[i] == 0 || inDeg[i] == 0 {
			m.log.Debug("participant cannot join any cycle",
				zap.String("participant", ps[i].ID),
				zap.Int("receivers", outDeg[i]),
				zap.Int("givers", inDeg[i]))
			return nil, 0, &UnsatisfiableConstraintsError{Proven: true}
		}
	}

	path := make([]int, 1, n)
	used := make([]bool, n)
	used[0] = true
	nodes := 0
	aborted := false

	var dfs func() bool
	dfs = func() bool {
		nodes++
		if nodes > m.maxNodes {
			aborted = true
			return false
		}
		last := path[len(path)-1]
		if len(path) == n {
			return allowed(last, path[0])
		}
		next := make([]int, 0, n)
		for c := range n {
			if !used[c] && allowed(last, c) {
				next = append(next, c)
			}
		}
		m.shuffle(next)
		for _, c := range next {
			used[c] = true
			path = append(path, c)
			if dfs() {
				return true
			}
			path = path[:len(path)-1]
			used[c] = false
			if aborted {
				return false
			}
		}
		return false
	}

	if dfs() {
		return path, nodes, nil
	}
	if aborted {
		m.log.Warn("backtracking search hit its node limit", zap.Int("search_nodes", m.maxNodes))
		return nil, m.maxNodes, &UnsatisfiableConstraintsError{SearchNodes: m.maxNodes}
	}
	return nil, nodes, &UnsatisfiableConstraintsError{Proven: true}
}

func build(ps []domain.Participant, order []int) (domain.Assignment, error) {
	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = ps[idx].ID
	}
	a, err := domain.NewAssignment(ids)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("match.build: %w", err)
	}
	return a, nil
}
