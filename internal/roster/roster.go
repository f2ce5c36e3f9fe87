// Package roster reads the participants file. The file is YAML; a JSON
// participants file is also accepted since YAML is a superset of JSON.
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/naveenspark/santa/pkg/domain"
)

// file mirrors the on-disk layout. developerId is the older spelling of
// organizer and is still read.
type file struct {
	Organizer    string               `yaml:"organizer"`
	DeveloperID  string               `yaml:"developerId"`
	Participants []domain.Participant `yaml:"participants"`
}

// Decode parses a roster from r and validates it.
func Decode(r io.Reader) (domain.Roster, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Roster{}, fmt.Errorf("roster.Decode: empty participants file")
		}
		return domain.Roster{}, fmt.Errorf("roster.Decode: %w", err)
	}

	ros := domain.Roster{Organizer: f.Organizer, Participants: f.Participants}
	if ros.Organizer == "" {
		ros.Organizer = f.DeveloperID
	}
	for i := range ros.Participants {
		p := &ros.Participants[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.Name == "" {
			p.Name = p.ID
		}
	}
	if err := ros.Validate(); err != nil {
		return domain.Roster{}, fmt.Errorf("roster.Decode: %w", err)
	}
	return ros, nil
}

// Load reads and validates the roster at path.
func Load(path string) (domain.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("roster.Load: %w", err)
	}
	ros, err := Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ros, nil
}

// Resolve picks the roster file to use: path if given, otherwise the first
// of the default names that exists in dir.
func Resolve(dir, path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, name := range []string{"participants.yaml", "participants.yml", "participants.json"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("roster.Resolve: %w", err)
		}
	}
	return "", fmt.Errorf("roster.Resolve: no participants file in %s (tried participants.yaml, participants.yml, participants.json)", dir)
}
