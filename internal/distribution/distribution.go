// Package distribution writes the organizer's text artifacts: the list of
// links and passwords to hand out, and a separate password sheet.
package distribution

import (
	"net/url"
	"strings"

	"github.com/naveenspark/santa/internal/credential"
	"github.com/naveenspark/santa/pkg/domain"
)

// PlaceholderSiteURL stands in for the site URL until one is configured.
const PlaceholderSiteURL = "[YOUR_SITE_URL]"

const ruleWidth = 60

// Input is everything the text artifacts are built from.
type Input struct {
	Roster      domain.Roster
	Assignment  domain.Assignment
	Credentials map[string]credential.Credential
	SiteURL     string
}

// PageURL is where a participant's page is published.
func PageURL(siteURL, id string) string {
	if siteURL == "" {
		siteURL = PlaceholderSiteURL
	}
	return strings.TrimRight(siteURL, "/") + "/" + url.PathEscape(id) + ".html"
}

// Distribution renders distribution.txt. The organizer's own match comes
// first; everyone else gets a URL and password but not their match.
func Distribution(in Input) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\nSECRET SANTA DISTRIBUTION\n" + rule + "\n\n")

	if org, ok := in.Roster.Find(in.Roster.Organizer); ok {
		b.WriteString("🎁 YOUR MATCH:\n")
		b.WriteString("   URL: " + PageURL(in.SiteURL, org.ID) + "\n")
		b.WriteString("   Password: " + in.Credentials[org.ID].Password + "\n")
		b.WriteString("   You are gifting: " + receiverName(in, org.ID) + "\n\n")
	}

	b.WriteString("📧 DISTRIBUTION LIST (for others):\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, p := range in.Roster.Participants {
		if p.ID == in.Roster.Organizer {
			continue
		}
		b.WriteString("\n" + p.Name + ":\n")
		b.WriteString("   URL: " + PageURL(in.SiteURL, p.ID) + "\n")
		b.WriteString("   Password: " + in.Credentials[p.ID].Password + "\n")
	}
	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// Passwords renders passwords.txt, one line per participant with the
// organizer's own line marked.
func Passwords(in Input) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\nSECRET SANTA PASSWORDS (for manual distribution)\n" + rule + "\n\n")
	for _, p := range in.Roster.Participants {
		b.WriteString("👤 " + p.Name + ": " + in.Credentials[p.ID].Password)
		if p.ID == in.Roster.Organizer {
			b.WriteString(" (YOURS)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func receiverName(in Input, giver string) string {
	rid, ok := in.Assignment.Receiver(giver)
	if !ok {
		return ""
	}
	if r, ok := in.Roster.Find(rid); ok {
		return r.Name
	}
	return rid
}
