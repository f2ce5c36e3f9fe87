package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment([]string{"b", "c", "a"})
	if err != nil {
		t.Fatalf("NewAssignment() error: %v", err)
	}
	want := map[string]string{"b": "c", "c": "a", "a": "b"}
	if diff := cmp.Diff(want, a.Pairs()); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
	if !a.IsSingleCycle() {
		t.Error("expected single cycle")
	}
}

func TestNewAssignmentErrors(t *testing.T) {
	if _, err := NewAssignment([]string{"a"}); !errors.Is(err, ErrInsufficientParticipants) {
		t.Errorf("single giver: err = %v, want ErrInsufficientParticipants", err)
	}
	if _, err := NewAssignment(nil); !errors.Is(err, ErrInsufficientParticipants) {
		t.Errorf("nil order: err = %v, want ErrInsufficientParticipants", err)
	}
	if _, err := NewAssignment([]string{"a", "b", "a"}); !errors.Is(err, ErrDuplicateParticipant) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateParticipant", err)
	}
}

func TestAssignmentIsImmutable(t *testing.T) {
	order := []string{"a", "b", "c"}
	a, err := NewAssignment(order)
	if err != nil {
		t.Fatal(err)
	}
	order[0] = "zzz"
	a.Order()[1] = "yyy"
	a.Pairs()["a"] = "a"

	if got, _ := a.Receiver("a"); got != "b" {
		t.Errorf("Receiver(a) = %q after caller mutation, want b", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, a.Order()); diff != "" {
		t.Errorf("Order() mismatch (-want +got):\n%s", diff)
	}
}

func TestChain(t *testing.T) {
	a, err := NewAssignment([]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c", "d", "a", "b"}, a.Chain("c")); diff != "" {
		t.Errorf("Chain(c) mismatch (-want +got):\n%s", diff)
	}
	if got := a.Chain("missing"); got != nil {
		t.Errorf("Chain(missing) = %v, want nil", got)
	}
}

func TestIsSingleCycleRejectsSubCycles(t *testing.T) {
	a := Assignment{
		order:     []string{"a", "b", "c", "d"},
		receivers: map[string]string{"a": "b", "b": "a", "c": "d", "d": "c"},
	}
	if a.IsSingleCycle() {
		t.Error("two 2-cycles reported as a single cycle")
	}
	var zero Assignment
	if zero.IsSingleCycle() {
		t.Error("zero Assignment reported as a single cycle")
	}
}
