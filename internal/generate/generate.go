// Package generate runs a full generation: match, issue credentials, render
// every page and write the organizer's text files.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/santa/internal/credential"
	"github.com/naveenspark/santa/internal/distribution"
	"github.com/naveenspark/santa/internal/match"
	"github.com/naveenspark/santa/internal/render"
	"github.com/naveenspark/santa/pkg/domain"
)

// Names of the organizer's text files, written to the output directory.
const (
	DistributionFile = "distribution.txt"
	PasswordsFile    = "passwords.txt"
)

// Options configures a Generator. Zero values fall back to defaults.
type Options struct {
	Matcher     *match.Matcher
	Credentials *credential.Generator
	Renderer    *render.Renderer
	Logger      *zap.Logger
	Now         func() time.Time

	DistDir string
	OutDir  string
	SiteURL string
}

// Generator ties the pipeline stages together.
type Generator struct {
	matcher  *match.Matcher
	creds    *credential.Generator
	renderer *render.Renderer
	log      *zap.Logger
	now      func() time.Time
	distDir  string
	outDir   string
	siteURL  string
}

// Page is one rendered participant page.
type Page struct {
	ParticipantID string
	Path          string
	HTML          []byte
}

// Result describes a finished run.
type Result struct {
	RunID       uuid.UUID
	Epoch       int64
	Roster      domain.Roster
	Assignment  domain.Assignment
	Credentials map[string]credential.Credential
	Pages       []Page

	Distribution     string
	DistributionPath string
	PasswordsPath    string
}

// New creates a Generator.
func New(opts Options) (*Generator, error) {
	if opts.Matcher == nil {
		opts.Matcher = match.New(nil, match.Options{Logger: opts.Logger})
	}
	if opts.Credentials == nil {
		opts.Credentials = credential.NewGenerator(nil, nil)
	}
	if opts.Renderer == nil {
		r, err := render.New()
		if err != nil {
			return nil, fmt.Errorf("generate.New: %w", err)
		}
		opts.Renderer = r
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DistDir == "" {
		opts.DistDir = "dist"
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	return &Generator{
		matcher:  opts.Matcher,
		creds:    opts.Credentials,
		renderer: opts.Renderer,
		log:      opts.Logger,
		now:      opts.Now,
		distDir:  opts.DistDir,
		outDir:   opts.OutDir,
		siteURL:  opts.SiteURL,
	}, nil
}

// Run generates everything for ros. Nothing is written unless matching,
// cycle verification and rendering all succeed.
func (g *Generator) Run(ctx context.Context, ros domain.Roster) (*Result, error) {
	if err := ros.Validate(); err != nil {
		return nil, fmt.Errorf("generate.Run: %w", err)
	}
	runID := uuid.New()
	log := g.log.With(zap.String("run_id", runID.String()))

	for _, u := range ros.UnknownExclusions() {
		log.Warn("exclusion references unknown participant; it has no effect",
			zap.String("participant", u.Participant),
			zap.String("excluded", u.Excluded))
	}

	assignment, err := g.matcher.Assign(ros.Participants)
	if err != nil {
		return nil, fmt.Errorf("generate.Run: %w", err)
	}
	if !assignment.IsSingleCycle() {
		return nil, fmt.Errorf("generate.Run: assignment is not a single cycle")
	}
	log.Debug("gift cycle", zap.String("chain", chainString(ros, assignment)))

	res := &Result{
		RunID:       runID,
		Epoch:       g.now().UnixMilli(),
		Roster:      ros,
		Assignment:  assignment,
		Credentials: g.creds.Issue(ros.IDs()),
	}

	pages, err := g.renderPages(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("generate.Run: %w", err)
	}
	res.Pages = pages

	in := distribution.Input{
		Roster:      ros,
		Assignment:  assignment,
		Credentials: res.Credentials,
		SiteURL:     g.siteURL,
	}
	res.Distribution = distribution.Distribution(in)
	res.DistributionPath = filepath.Join(g.outDir, DistributionFile)
	res.PasswordsPath = filepath.Join(g.outDir, PasswordsFile)

	if err := g.write(res, distribution.Passwords(in)); err != nil {
		return nil, fmt.Errorf("generate.Run: %w", err)
	}
	log.Info("generation complete",
		zap.Int("participants", len(ros.Participants)),
		zap.Int64("epoch", res.Epoch),
		zap.String("dist", g.distDir))
	return res, nil
}

// renderPages renders one page per participant concurrently. The assignment
// and credentials are read-only at this point.
func (g *Generator) renderPages(ctx context.Context, res *Result) ([]Page, error) {
	pages := make([]Page, len(res.Roster.Participants))
	eg, ctx := errgroup.WithContext(ctx)
	for i, p := range res.Roster.Participants {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rid, ok := res.Assignment.Receiver(p.ID)
			if !ok {
				return fmt.Errorf("%s has no receiver", p.ID)
			}
			receiver, _ := res.Roster.Find(rid)
			html, err := g.renderer.Page(render.PageData{
				ParticipantName: p.Name,
				ReceiverName:    receiver.Name,
				PasswordHash:    res.Credentials[p.ID].Hash,
				Epoch:           res.Epoch,
			})
			if err != nil {
				return err
			}
			pages[i] = Page{
				ParticipantID: p.ID,
				Path:          filepath.Join(g.distDir, PageName(p.ID)),
				HTML:          html,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (g *Generator) write(res *Result, passwords string) error {
	if err := os.MkdirAll(g.distDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", g.distDir, err)
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", g.outDir, err)
	}
	for _, p := range res.Pages {
		if err := os.WriteFile(p.Path, p.HTML, 0o644); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		g.log.Debug("page written", zap.String("path", p.Path))
	}
	// The text files hold passwords; keep them private to the organizer.
	if err := os.WriteFile(res.DistributionPath, []byte(res.Distribution), 0o600); err != nil {
		return fmt.Errorf("write distribution: %w", err)
	}
	if err := os.WriteFile(res.PasswordsPath, []byte(passwords), 0o600); err != nil {
		return fmt.Errorf("write passwords: %w", err)
	}
	return nil
}

// PageName is the file name of a participant's page.
func PageName(id string) string {
	return id + ".html"
}

// Chain returns participant names in gift order starting from the first
// roster entry, closed back to the start: "Ana → Ben → Cal → Ana".
func (r *Result) Chain() string {
	return chainString(r.Roster, r.Assignment)
}

func chainString(ros domain.Roster, a domain.Assignment) string {
	if len(ros.Participants) == 0 {
		return ""
	}
	ids := a.Chain(ros.Participants[0].ID)
	names := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		p, _ := ros.Find(id)
		names = append(names, p.Name)
	}
	if len(names) > 0 {
		names = append(names, names[0])
	}
	return strings.Join(names, " → ")
}
