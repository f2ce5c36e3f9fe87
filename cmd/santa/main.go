package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/naveenspark/santa/internal/config"
	"github.com/naveenspark/santa/internal/credential"
	"github.com/naveenspark/santa/internal/generate"
	"github.com/naveenspark/santa/internal/match"
	"github.com/naveenspark/santa/internal/render"
	"github.com/naveenspark/santa/internal/roster"
	"github.com/naveenspark/santa/internal/site"
	"github.com/naveenspark/santa/internal/tui"
	"github.com/naveenspark/santa/pkg/client"
	"github.com/naveenspark/santa/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printGreeting()
		printHelp()
		return nil
	}

	switch os.Args[1] {
	case "--version", "version", "-v":
		fmt.Println("santa " + version)
		return nil
	case "help", "--help", "-h":
		printHelp()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "generate":
		res, err := runGenerate(ctx, cfg, logger, args)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, res, cfg.SiteURL)
		return nil
	case "review":
		return runReview(ctx, cfg, logger, args)
	case "deploy":
		return runDeploy(ctx, cfg, logger, args)
	case "verify":
		return runVerify(ctx, cfg, args)
	default:
		return fmt.Errorf("unknown command %q (run \"santa help\")", os.Args[1])
	}
}

// newLogger builds the diagnostic logger. Console output for people goes
// through fmt; zap carries warnings and debug traces.
func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// rosterPath returns the roster file named on the command line, the
// configured default when it exists, or the first default name found in
// the working directory.
func rosterPath(cfg config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return roster.Resolve(".", args[0])
	}
	if _, err := os.Stat(cfg.Participants); err == nil {
		return cfg.Participants, nil
	}
	return roster.Resolve(".", "")
}

func loadRoster(cfg config.Config, args []string) (domain.Roster, error) {
	path, err := rosterPath(cfg, args)
	if err != nil {
		return domain.Roster{}, err
	}
	return roster.Load(path)
}

func runGenerate(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) (*generate.Result, error) {
	ros, err := loadRoster(cfg, args)
	if err != nil {
		return nil, err
	}
	gen, err := generate.New(generate.Options{
		Matcher: match.New(nil, match.Options{
			MaxAttempts:    cfg.MaxAttempts,
			Exhaustive:     cfg.Exhaustive,
			MaxSearchNodes: cfg.MaxSearchNodes,
			Logger:         logger,
		}),
		Credentials: credential.NewGenerator(cfg.Words, nil),
		Logger:      logger,
		DistDir:     cfg.DistDir,
		OutDir:      cfg.OutDir,
		SiteURL:     cfg.SiteURL,
	})
	if err != nil {
		return nil, err
	}
	res, err := gen.Run(ctx, ros)
	if err != nil {
		if match.IsUnsatisfiable(err) {
			return nil, fmt.Errorf("%w\nloosen some exclusions in the participants file and try again", err)
		}
		return nil, err
	}
	return res, nil
}

func runReview(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) error {
	res, err := runGenerate(ctx, cfg, logger, args)
	if err != nil {
		return err
	}
	p := tea.NewProgram(tui.NewReview(res), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	printSummary(os.Stdout, res, cfg.SiteURL)
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (site.Store, error) {
	if cfg.Publish == config.PublishS3 {
		s, err := site.NewS3Store(ctx, site.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Prefix:    cfg.S3.Prefix,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := site.NewFSStore(cfg.DocsDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func runDeploy(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) error {
	ros, err := loadRoster(cfg, args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.DistDir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s does not exist; run \"santa generate\" first", cfg.DistDir)
	}

	r, err := render.New()
	if err != nil {
		return err
	}
	index, err := r.Index()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	rep, err := site.Deploy(ctx, store, site.DeployInput{
		DistDir: cfg.DistDir,
		IDs:     ros.IDs(),
		Index:   index,
	})
	if err != nil {
		return err
	}
	for _, id := range rep.Missing {
		logger.Warn("no generated page for participant", zap.String("participant", id))
	}
	printDeployReport(os.Stdout, store.Name(), rep)
	return nil
}

func runVerify(ctx context.Context, cfg config.Config, args []string) error {
	if cfg.SiteURL == "" {
		return fmt.Errorf("SANTA_SITE_URL is not set")
	}
	ros, err := loadRoster(cfg, args)
	if err != nil {
		return err
	}

	local := make(map[string][]byte, len(ros.Participants))
	for _, id := range ros.IDs() {
		body, err := os.ReadFile(filepath.Join(cfg.DistDir, generate.PageName(id)))
		if err == nil {
			local[id] = body
		}
	}

	statuses := client.New(cfg.SiteURL).Check(ctx, ros.IDs(), local)
	failed := printVerifyReport(os.Stdout, statuses)
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed verification", failed, len(statuses))
	}
	return nil
}
