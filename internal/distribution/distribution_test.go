package distribution

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/naveenspark/santa/internal/credential"
	"github.com/naveenspark/santa/pkg/domain"
)

func testInput(t *testing.T, organizer, siteURL string) Input {
	t.Helper()
	a, err := domain.NewAssignment([]string{"ana", "ben", "cal"})
	if err != nil {
		t.Fatal(err)
	}
	return Input{
		Roster: domain.Roster{
			Organizer: organizer,
			Participants: []domain.Participant{
				{ID: "ana", Name: "Ana"},
				{ID: "ben", Name: "Ben"},
				{ID: "cal", Name: "Cal"},
			},
		},
		Assignment: a,
		Credentials: map[string]credential.Credential{
			"ana": {Password: "coco1111"},
			"ben": {Password: "lucy2222"},
			"cal": {Password: "mila3333"},
		},
		SiteURL: siteURL,
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		site, id, want string
	}{
		{"https://x.github.io/santa", "ana", "https://x.github.io/santa/ana.html"},
		{"https://x.github.io/santa/", "ana", "https://x.github.io/santa/ana.html"},
		{"", "ana", "[YOUR_SITE_URL]/ana.html"},
		{"https://x.io", "josé maría", "https://x.io/jos%C3%A9%20mar%C3%ADa.html"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := PageURL(tt.site, tt.id); got != tt.want {
				t.Errorf("PageURL(%q, %q) = %q, want %q", tt.site, tt.id, got, tt.want)
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	got := Distribution(testInput(t, "ben", "https://x.io"))
	rule := strings.Repeat("=", 60)
	want := rule + "\n" +
		"SECRET SANTA DISTRIBUTION\n" +
		rule + "\n\n" +
		"🎁 YOUR MATCH:\n" +
		"   URL: https://x.io/ben.html\n" +
		"   Password: lucy2222\n" +
		"   You are gifting: Cal\n\n" +
		"📧 DISTRIBUTION LIST (for others):\n" +
		strings.Repeat("-", 60) + "\n" +
		"\nAna:\n   URL: https://x.io/ana.html\n   Password: coco1111\n" +
		"\nCal:\n   URL: https://x.io/cal.html\n   Password: mila3333\n" +
		"\n" + rule + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Distribution() mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributionWithoutOrganizer(t *testing.T) {
	got := Distribution(testInput(t, "", ""))
	if strings.Contains(got, "YOUR MATCH") {
		t.Error("no organizer configured, but YOUR MATCH block was written")
	}
	if strings.Contains(got, "You are gifting") {
		t.Error("matches must not be revealed in the distribution list")
	}
	if n := strings.Count(got, PlaceholderSiteURL); n != 3 {
		t.Errorf("placeholder URL appears %d times, want 3", n)
	}
}

func TestPasswords(t *testing.T) {
	got := Passwords(testInput(t, "cal", ""))
	for _, line := range []string{
		"👤 Ana: coco1111\n",
		"👤 Ben: lucy2222\n",
		"👤 Cal: mila3333 (YOURS)\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Passwords() missing %q in:\n%s", line, got)
		}
	}
}
