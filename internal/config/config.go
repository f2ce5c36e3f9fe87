// Package config loads santa settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Publish targets.
const (
	PublishFS = "fs"
	PublishS3 = "s3"
)

// Config holds every tunable of a generate/deploy run.
type Config struct {
	// SiteURL is the public base URL the pages are served from.
	SiteURL string `env:"SANTA_SITE_URL"`
	// Participants is the default roster file.
	Participants string `env:"SANTA_PARTICIPANTS" envDefault:"participants.yaml"`

	MaxAttempts int  `env:"SANTA_MAX_ATTEMPTS" envDefault:"1000"`
	Exhaustive  bool `env:"SANTA_EXHAUSTIVE"`

	// MaxSearchNodes bounds the exhaustive search.
	MaxSearchNodes int `env:"SANTA_MAX_SEARCH_NODES" envDefault:"1000000"`

	DistDir string `env:"SANTA_DIST_DIR" envDefault:"dist"`
	OutDir  string `env:"SANTA_OUT_DIR" envDefault:"."`
	DocsDir string `env:"SANTA_DOCS_DIR" envDefault:"docs"`

	Publish string `env:"SANTA_PUBLISH" envDefault:"fs"`
	S3      S3Config

	// Words seeds generated passwords; each password is a word plus four digits.
	Words []string `env:"SANTA_PASSWORD_WORDS" envSeparator:","`

	Debug bool `env:"SANTA_DEBUG"`
}

// S3Config selects the bucket used when Publish is "s3".
type S3Config struct {
	Bucket    string `env:"SANTA_S3_BUCKET"`
	Region    string `env:"SANTA_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"SANTA_S3_ENDPOINT"`
	Prefix    string `env:"SANTA_S3_PREFIX"`
	PathStyle bool   `env:"SANTA_S3_PATH_STYLE"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	cfg.Publish = strings.ToLower(strings.TrimSpace(cfg.Publish))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a run.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("SANTA_MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	if c.MaxSearchNodes < 1 {
		return fmt.Errorf("SANTA_MAX_SEARCH_NODES must be at least 1, got %d", c.MaxSearchNodes)
	}
	switch c.Publish {
	case PublishFS:
	case PublishS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("SANTA_S3_BUCKET is required when SANTA_PUBLISH=s3")
		}
	default:
		return fmt.Errorf("unknown SANTA_PUBLISH %q (want fs or s3)", c.Publish)
	}
	return nil
}
