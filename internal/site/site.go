// Package site publishes generated pages to where they are served from: a
// local directory (for GitHub Pages style hosting) or an S3 bucket.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// IndexKey is the landing page served at the site root.
const IndexKey = "index.html"

// Store is a flat key/value view of a publish target.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// DeployInput describes what to publish.
type DeployInput struct {
	// DistDir holds the generated <id>.html pages.
	DistDir string
	// IDs are the current participants. Only their pages are published.
	IDs   []string
	Index []byte
}

// Report lists what a deploy changed, sorted by key.
type Report struct {
	Copied  []string
	Removed []string
	// Missing are participants with no generated page in DistDir.
	Missing []string
}

// Deploy writes the landing page, copies the page of every current
// participant, and removes any other .html page left in the store by an
// earlier run.
func Deploy(ctx context.Context, store Store, in DeployInput) (Report, error) {
	var rep Report
	if err := store.Put(ctx, IndexKey, in.Index, "text/html; charset=utf-8"); err != nil {
		return rep, fmt.Errorf("site.Deploy: put %s: %w", IndexKey, err)
	}

	valid := make(map[string]struct{}, len(in.IDs))
	for _, id := range in.IDs {
		key := id + ".html"
		valid[key] = struct{}{}

		body, err := os.ReadFile(filepath.Join(in.DistDir, key))
		if errors.Is(err, fs.ErrNotExist) {
			rep.Missing = append(rep.Missing, id)
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("site.Deploy: %w", err)
		}
		if err := store.Put(ctx, key, body, "text/html; charset=utf-8"); err != nil {
			return rep, fmt.Errorf("site.Deploy: put %s: %w", key, err)
		}
		rep.Copied = append(rep.Copied, key)
	}

	keys, err := store.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("site.Deploy: list: %w", err)
	}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".html") || key == IndexKey {
			continue
		}
		if _, ok := valid[key]; ok {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			return rep, fmt.Errorf("site.Deploy: delete %s: %w", key, err)
		}
		rep.Removed = append(rep.Removed, key)
	}

	slices.Sort(rep.Copied)
	slices.Sort(rep.Removed)
	slices.Sort(rep.Missing)
	return rep, nil
}

// sanitizeKey keeps keys flat and inside the store root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q contains '..'", key)
	}
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q contains a path separator", key)
	}
	return key, nil
}
