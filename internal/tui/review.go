// Package tui is the terminal review screen shown after a generation run.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/santa/internal/browser"
	"github.com/naveenspark/santa/internal/generate"
)

// Entry is one row of the gift chain.
type Entry struct {
	GiverID      string
	GiverName    string
	ReceiverName string
	Password     string
	PagePath     string
	Organizer    bool
}

// copiedMsg reports the result of copying the distribution text.
type copiedMsg struct{ err error }

// openedMsg reports the result of opening a page in the browser.
type openedMsg struct {
	name string
	err  error
}

// Review is the root Bubbletea model for reviewing a run.
type Review struct {
	runID         string
	chain         string
	entries       []Entry
	distribution  string
	cursor        int
	showPasswords bool
	status        string
	statusErr     bool
	width         int
	height        int
	frame         int

	copyText func(string) error
	openFile func(string) error
}

// NewReview builds the review screen for res. Rows follow the gift chain
// starting from the first participant in the roster.
func NewReview(res *generate.Result) Review {
	paths := make(map[string]string, len(res.Pages))
	for _, p := range res.Pages {
		paths[p.ParticipantID] = p.Path
	}

	var entries []Entry
	if len(res.Roster.Participants) > 0 {
		for _, id := range res.Assignment.Chain(res.Roster.Participants[0].ID) {
			giver, _ := res.Roster.Find(id)
			rid, _ := res.Assignment.Receiver(id)
			receiver, _ := res.Roster.Find(rid)
			entries = append(entries, Entry{
				GiverID:      id,
				GiverName:    giver.Name,
				ReceiverName: receiver.Name,
				Password:     res.Credentials[id].Password,
				PagePath:     paths[id],
				Organizer:    id == res.Roster.Organizer,
			})
		}
	}

	return Review{
		runID:        res.RunID.String(),
		chain:        res.Chain(),
		entries:      entries,
		distribution: res.Distribution,
		copyText:     clipboard.WriteAll,
		openFile:     browser.OpenFile,
	}
}

func (m Review) Init() tea.Cmd {
	return shimmerTickCmd()
}

func (m Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, shimmerTickCmd()

	case copiedMsg:
		if msg.err != nil {
			m.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("distribution list copied to clipboard", false)
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.setStatus("could not open page: "+msg.err.Error(), true)
		} else {
			m.setStatus("opened "+msg.name+"'s page", false)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			if len(m.entries) > 0 {
				m.cursor = len(m.entries) - 1
			}
		case "p":
			m.showPasswords = !m.showPasswords
		case "c":
			text, copyText := m.distribution, m.copyText
			return m, func() tea.Msg {
				return copiedMsg{err: copyText(text)}
			}
		case "enter", "o":
			if len(m.entries) == 0 {
				return m, nil
			}
			e := m.entries[m.cursor]
			if e.PagePath == "" {
				m.setStatus("no page was written for "+e.GiverName, true)
				return m, nil
			}
			openFile := m.openFile
			return m, func() tea.Msg {
				return openedMsg{name: e.GiverName, err: openFile(e.PagePath)}
			}
		}
	}
	return m, nil
}

func (m *Review) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Review) View() string {
	logo := renderShimmerLogo(m.frame)
	pad := (m.width - lipgloss.Width(logo)) / 2
	if pad < 0 {
		pad = 0
	}

	var b strings.Builder
	b.WriteString("\n" + strings.Repeat(" ", pad) + logo + "\n")
	meta := metaStyle.Render(fmt.Sprintf("run %s · %d participants", m.runID, len(m.entries)))
	metaPad := (m.width - lipgloss.Width(meta)) / 2
	if metaPad < 0 {
		metaPad = 0
	}
	b.WriteString(strings.Repeat(" ", metaPad) + meta + "\n\n")

	b.WriteString("  " + sectionHeaderStyle.Render("── GIFT CHAIN ──") + "\n")

	nameWidth := 8
	for _, e := range m.entries {
		nameWidth = max(nameWidth, len([]rune(e.GiverName)))
	}
	nameWidth = min(nameWidth, 24)

	for i, e := range m.entries {
		giver := padRight(truncStr(e.GiverName, nameWidth), nameWidth)
		receiver := padRight(truncStr(e.ReceiverName, nameWidth), nameWidth)
		pw := maskPassword(e.Password)
		if m.showPasswords {
			pw = e.Password
		}

		prefix := "    "
		giverStyle := normalStyle
		if i == m.cursor {
			prefix = "  " + accentStyle.Render("▸") + " "
			giverStyle = selectedStyle
		}
		row := giverStyle.Render(giver) + " " + accentStyle.Render("→") + " " +
			normalStyle.Render(receiver) + "  " + dimStyle.Render(pw)
		if e.Organizer {
			row += "  " + goldStyle.Render("(you)")
		}
		if i == m.cursor {
			row = selectedRowBg.Render(row)
		}
		b.WriteString(prefix + row + "\n")
	}

	if m.chain != "" {
		b.WriteString("\n  " + dimStyle.Render(m.chain) + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := accentStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("  " + style.Render(m.status) + "\n")
	}

	help := []string{
		helpEntry("j/k", "move"),
		helpEntry("enter", "open page"),
		helpEntry("p", "passwords"),
		helpEntry("c", "copy list"),
		helpEntry("q", "quit"),
	}
	b.WriteString("  " + strings.Join(help, "  ") + "\n")
	return b.String()
}
