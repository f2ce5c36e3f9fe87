package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MinParticipants is the smallest roster that can form a gift cycle.
const MinParticipants = 2

var (
	// ErrInsufficientParticipants is returned when fewer than MinParticipants are supplied.
	ErrInsufficientParticipants = errors.New("at least 2 participants are required")
	// ErrDuplicateParticipant is returned when two participants share an id.
	ErrDuplicateParticipant = errors.New("duplicate participant id")
	// ErrInvalidParticipantID is returned for an id that cannot be used as a file name.
	ErrInvalidParticipantID = errors.New("invalid participant id")
)

// Participant is one person in the exchange.
type Participant struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Excludes reports whether id is in the participant's exclusion list.
// It is a raw id membership test: ids that name no participant never match
// anyone, so they are silently ignored.
func (p Participant) Excludes(id string) bool {
	return slices.Contains(p.Exclude, id)
}

// Roster is the parsed participants file.
type Roster struct {
	// Organizer is the id of the person running the generator. Their
	// credentials are listed separately in the distribution file.
	Organizer    string        `yaml:"organizer,omitempty" json:"organizer,omitempty"`
	Participants []Participant `yaml:"participants" json:"participants"`
}

// UnknownExclusion is an exclusion entry that references no participant.
type UnknownExclusion struct {
	Participant string
	Excluded    string
}

// CheckIDs verifies that there are enough participants and that every id is
// present and unique.
func CheckIDs(participants []Participant) error {
	if len(participants) < MinParticipants {
		return fmt.Errorf("%w, found %d", ErrInsufficientParticipants, len(participants))
	}
	seen := make(map[string]struct{}, len(participants))
	for i, p := range participants {
		if p.ID == "" {
			return fmt.Errorf("participant %d has an empty id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// CheckFileID verifies that id can name the participant's page file: it
// must stay inside the output directory and not be hidden.
func CheckFileID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: blank", ErrInvalidParticipantID)
	case strings.Contains(id, ".."):
		return fmt.Errorf("%w %q: contains '..'", ErrInvalidParticipantID, id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("%w %q: contains a path separator", ErrInvalidParticipantID, id)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("%w %q: starts with '.'", ErrInvalidParticipantID, id)
	case strings.IndexFunc(id, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0:
		return fmt.Errorf("%w %q: contains a control character", ErrInvalidParticipantID, id)
	}
	return nil
}

// Validate checks the roster before any matching is attempted. Ids become
// page file names, so each must also pass CheckFileID.
func (r Roster) Validate() error {
	if err := CheckIDs(r.Participants); err != nil {
		return err
	}
	for _, p := range r.Participants {
		if err := CheckFileID(p.ID); err != nil {
			return err
		}
	}
	if r.Organizer != "" {
		if _, ok := r.Find(r.Organizer); !ok {
			return fmt.Errorf("organizer %q is not a participant", r.Organizer)
		}
	}
	return nil
}

// Find returns the participant with the given id.
func (r Roster) Find(id string) (Participant, bool) {
	for _, p := range r.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// IDs returns participant ids in roster order.
func (r Roster) IDs() []string {
	ids := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		ids[i] = p.ID
	}
	return ids
}

// UnknownExclusions lists exclusion entries that reference no participant.
// These never affect matching; callers decide whether to warn about them.
func (r Roster) UnknownExclusions() []UnknownExclusion {
	known := make(map[string]struct{}, len(r.Participants))
	for _, p := range r.Participants {
		known[p.ID] = struct{}{}
	}
	var out []UnknownExclusion
	for _, p := range r.Participants {
		for _, ex := range p.Exclude {
			if _, ok := known[ex]; !ok {
				out = append(out, UnknownExclusion{Participant: p.ID, Excluded: ex})
			}
		}
	}
	return out
}
