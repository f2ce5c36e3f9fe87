// Package credential issues the per-participant passwords that unlock each
// generated page.
package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
)

// DefaultWords are the password stems used when none are configured.
var DefaultWords = []string{"coco", "lucy", "canela", "koby", "pudsy", "mila"}

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Credential is a participant's password and the hash embedded in their page.
type Credential struct {
	Password string
	Hash     string
}

// Generator makes memorable passwords: a word followed by four digits.
type Generator struct {
	words []string
	src   Source
}

// NewGenerator creates a Generator. Empty words fall back to DefaultWords and
// a nil src uses the process-wide math/rand/v2 source.
func NewGenerator(words []string, src Source) *Generator {
	if len(words) == 0 {
		words = DefaultWords
	}
	if src == nil {
		src = globalSource{}
	}
	return &Generator{words: words, src: src}
}

// Password returns a new password such as "koby4821".
func (g *Generator) Password() string {
	word := g.words[g.src.IntN(len(g.words))]
	digits := 1000 + g.src.IntN(9000)
	return word + strconv.Itoa(digits)
}

// maxRedraws bounds how often Issue redraws a password already handed out.
const maxRedraws = 100

// Issue creates one credential per id. Passwords are distinct unless the
// word list is too small to make that likely, in which case a repeat is
// kept after maxRedraws tries.
func (g *Generator) Issue(ids []string) map[string]Credential {
	out := make(map[string]Credential, len(ids))
	used := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pw := g.Password()
		for i := 0; i < maxRedraws; i++ {
			if _, taken := used[pw]; !taken {
				break
			}
			pw = g.Password()
		}
		used[pw] = struct{}{}
		out[id] = Credential{Password: pw, Hash: Hash(pw)}
	}
	return out
}

// Hash returns the lowercase hex SHA-256 of password, the form the page's
// script compares against.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
