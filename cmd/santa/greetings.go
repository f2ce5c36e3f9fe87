package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var santaGreetings = [...]string{
	"The list is made. Nobody has checked it twice.",
	"Somebody out there is about to receive socks. Make sure it's the right somebody.",
	"The elves refuse to draw names from a hat again. Use the generator.",
	"No peeking. The pages are locked for a reason.",
	"Every name gives once and receives once. The sleigh insists.",
	"Grandma excluded herself from buying for Uncle Bob. The matcher respects that.",
	"Five wrong guesses and the page locks. Choose your password carefully.",
	"Reindeer are not eligible participants. We checked.",
	"The chain goes all the way around. Nobody gets left holding an empty stocking.",
	"It's not a Secret Santa if you read passwords.txt out loud.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true).
		Render("S E C R E T   S A N T A")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"One name in, one name out, nobody buys for themselves."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"santa generate [file]", "Draw names, write pages and the distribution list"},
		{"santa review [file]", "Draw names and review the result interactively"},
		{"santa deploy [file]", "Publish pages to SANTA_DOCS_DIR or S3, pruning stale ones"},
		{"santa verify [file]", "Check every published page is reachable and current"},
		{"santa version", "Show version"},
		{"santa help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}

	envs := []struct{ name, desc string }{
		{"SANTA_SITE_URL", "Public URL the pages are served from"},
		{"SANTA_MAX_ATTEMPTS", "Random draws before giving up (default 1000)"},
		{"SANTA_EXHAUSTIVE", "Search every arrangement when random draws fail"},
		{"SANTA_MAX_SEARCH_NODES", "Step limit for that search (default 1000000)"},
		{"SANTA_PUBLISH", "fs or s3 (default fs)"},
		{"SANTA_DEBUG", "Verbose logging"},
	}
	fmt.Printf("\n  Environment:\n")
	for _, e := range envs {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Println()
}

func printGreeting() {
	msg := santaGreetings[rand.IntN(len(santaGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true).
		Render("SANTA")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	fmt.Printf("\n%s\n\n%s\n", title, quote)
}
