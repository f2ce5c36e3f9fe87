// Package render produces the static HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultMaxAttempts is how many wrong passwords a page accepts before locking.
const DefaultMaxAttempts = 5

// PageData fills one participant's page.
type PageData struct {
	ParticipantName string
	ReceiverName    string
	PasswordHash    string
	// Epoch identifies the generation run. Pages key their stored attempt
	// counter on it so a new deployment resets lockouts.
	Epoch int64
	// MaxAttempts defaults to DefaultMaxAttempts when zero.
	MaxAttempts int
}

type pageView struct {
	ParticipantName string
	ReceiverName    string
	PasswordHash    string
	Epoch           string
	MaxAttempts     int
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	page  *template.Template
	index *template.Template
	title string
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render.New: parse page: %w", err)
	}
	index, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render.New: parse index: %w", err)
	}
	return &Renderer{page: page, index: index, title: "Secret Santa"}, nil
}

// Page renders a participant's password-protected page.
func (r *Renderer) Page(d PageData) ([]byte, error) {
	if d.PasswordHash == "" {
		return nil, fmt.Errorf("render.Page: %s: empty password hash", d.ParticipantName)
	}
	maxAttempts := d.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	v := pageView{
		ParticipantName: d.ParticipantName,
		ReceiverName:    d.ReceiverName,
		PasswordHash:    d.PasswordHash,
		Epoch:           strconv.FormatInt(d.Epoch, 10),
		MaxAttempts:     maxAttempts,
	}
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render.Page: %w", err)
	}
	return buf.Bytes(), nil
}

// Index renders the landing page served at the site root.
func (r *Renderer) Index() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, struct{ Title string }{r.title}); err != nil {
		return nil, fmt.Errorf("render.Index: %w", err)
	}
	return buf.Bytes(), nil
}
