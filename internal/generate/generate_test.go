package generate

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/santa/internal/credential"
	"github.com/naveenspark/santa/internal/match"
	"github.com/naveenspark/santa/pkg/domain"
)

func testRoster() domain.Roster {
	return domain.Roster{
		Organizer: "ana",
		Participants: []domain.Participant{
			{ID: "ana", Name: "Ana", Exclude: []string{"ben"}},
			{ID: "ben", Name: "Ben", Exclude: []string{"ana"}},
			{ID: "cal", Name: "Cal"},
			{ID: "dee", Name: "Dee", Exclude: []string{"nobody"}},
		},
	}
}

func newTestGenerator(t *testing.T, dir string, seed uint64) *Generator {
	t.Helper()
	g, err := New(Options{
		Matcher:     match.New(rand.New(rand.NewPCG(seed, 1)), match.Options{}),
		Credentials: credential.NewGenerator(nil, rand.New(rand.NewPCG(seed, 2))),
		Now:         func() time.Time { return time.UnixMilli(1734000000000) },
		DistDir:     filepath.Join(dir, "dist"),
		OutDir:      dir,
		SiteURL:     "https://example.io/santa",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, dir, 7)

	res, err := g.Run(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Epoch != 1734000000000 {
		t.Errorf("Epoch = %d, want 1734000000000", res.Epoch)
	}
	if !res.Assignment.IsSingleCycle() {
		t.Error("assignment is not a single cycle")
	}
	if r, _ := res.Assignment.Receiver("ana"); r == "ben" {
		t.Error("ana was assigned an excluded receiver")
	}
	if len(res.Pages) != 4 {
		t.Fatalf("got %d pages, want 4", len(res.Pages))
	}

	for _, p := range testRoster().Participants {
		path := filepath.Join(dir, "dist", p.ID+".html")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		html := string(data)
		rid, _ := res.Assignment.Receiver(p.ID)
		receiver, _ := res.Roster.Find(rid)
		if !strings.Contains(html, `"`+receiver.Name+`"`) {
			t.Errorf("%s page does not name receiver %s", p.ID, receiver.Name)
		}
		if !strings.Contains(html, res.Credentials[p.ID].Hash) {
			t.Errorf("%s page does not embed its password hash", p.ID)
		}
	}

	dist, err := os.ReadFile(res.DistributionPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(dist) != res.Distribution {
		t.Error("distribution.txt differs from Result.Distribution")
	}
	if !strings.Contains(res.Distribution, "https://example.io/santa/ana.html") {
		t.Errorf("distribution missing organizer URL:\n%s", res.Distribution)
	}
	pw, err := os.ReadFile(res.PasswordsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pw), "👤 Ana: "+res.Credentials["ana"].Password+" (YOURS)") {
		t.Errorf("passwords.txt missing organizer line:\n%s", pw)
	}
}

func TestRunChain(t *testing.T) {
	res, err := newTestGenerator(t, t.TempDir(), 11).Run(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	chain := res.Chain()
	parts := strings.Split(chain, " → ")
	if len(parts) != 5 {
		t.Fatalf("Chain() = %q, want 5 names", chain)
	}
	if parts[0] != "Ana" || parts[4] != "Ana" {
		t.Errorf("Chain() = %q, want it to start and end with Ana", chain)
	}
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, dir, 3)

	ros := domain.Roster{Participants: []domain.Participant{
		{ID: "a", Exclude: []string{"b"}},
		{ID: "b", Exclude: []string{"a"}},
	}}
	_, err := g.Run(context.Background(), ros)
	if !match.IsUnsatisfiable(err) {
		t.Fatalf("Run() error = %v, want unsatisfiable", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "dist")); !os.IsNotExist(statErr) {
		t.Error("dist directory was created for a failed run")
	}
	if _, statErr := os.Stat(filepath.Join(dir, DistributionFile)); !os.IsNotExist(statErr) {
		t.Error("distribution.txt was written for a failed run")
	}
}

func TestRunRejectsInvalidRoster(t *testing.T) {
	g := newTestGenerator(t, t.TempDir(), 1)
	_, err := g.Run(context.Background(), domain.Roster{Participants: []domain.Participant{{ID: "solo"}}})
	if err == nil {
		t.Fatal("expected error for single participant")
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestGenerator(t, dir, 5).Run(ctx, testRoster()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "dist")); !os.IsNotExist(statErr) {
		t.Error("dist directory was created for a cancelled run")
	}
}

func TestRunRejectsPathLikeIDs(t *testing.T) {
	for _, id := range []string{"../escaped", "sub/page", `..\up`} {
		t.Run(id, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, "out")
			g := newTestGenerator(t, dir, 1)

			ros := domain.Roster{Participants: []domain.Participant{
				{ID: id, Name: "X"},
				{ID: "b", Name: "B"},
			}}
			_, err := g.Run(context.Background(), ros)
			if !errors.Is(err, domain.ErrInvalidParticipantID) {
				t.Fatalf("Run() error = %v, want ErrInvalidParticipantID", err)
			}
			if _, statErr := os.Stat(filepath.Join(dir, "escaped.html")); !os.IsNotExist(statErr) {
				t.Error("page written outside the dist directory")
			}
			if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
				t.Error("output directory was created for a rejected roster")
			}
		})
	}
}
