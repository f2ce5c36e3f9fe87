package credential

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"testing"
)

type fixedSource struct{ vals []int }

func (f *fixedSource) IntN(n int) int {
	v := f.vals[0]
	f.vals = f.vals[1:]
	return v % n
}

func TestHash(t *testing.T) {
	// echo -n "password" | sha256sum
	want := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := Hash("password"); got != want {
		t.Errorf("Hash(password) = %q, want %q", got, want)
	}
}

func TestPasswordFixed(t *testing.T) {
	g := NewGenerator([]string{"holly", "ivy"}, &fixedSource{vals: []int{1, 234}})
	if got := g.Password(); got != "ivy1234" {
		t.Errorf("Password() = %q, want %q", got, "ivy1234")
	}
}

func TestPasswordShape(t *testing.T) {
	re := regexp.MustCompile(`^(coco|lucy|canela|koby|pudsy|mila)[1-9][0-9]{3}$`)
	g := NewGenerator(nil, rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 200; i++ {
		if pw := g.Password(); !re.MatchString(pw) {
			t.Fatalf("Password() = %q does not match %s", pw, re)
		}
	}
}

func TestIssue(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewPCG(3, 4)))
	creds := g.Issue([]string{"a", "b", "c"})
	if len(creds) != 3 {
		t.Fatalf("got %d credentials, want 3", len(creds))
	}
	for id, c := range creds {
		if c.Password == "" {
			t.Errorf("%s: empty password", id)
		}
		if c.Hash != Hash(c.Password) {
			t.Errorf("%s: hash does not match password", id)
		}
	}
}

func TestIssueRedrawsRepeatedPassword(t *testing.T) {
	// a gets ivy1234; b first draws ivy1234 again, then holly5678.
	src := &fixedSource{vals: []int{1, 234, 1, 234, 0, 4678}}
	creds := NewGenerator([]string{"holly", "ivy"}, src).Issue([]string{"a", "b"})
	if creds["a"].Password != "ivy1234" {
		t.Errorf("a = %q, want ivy1234", creds["a"].Password)
	}
	if creds["b"].Password != "holly5678" {
		t.Errorf("b = %q, want holly5678", creds["b"].Password)
	}
}

func TestIssueDistinct(t *testing.T) {
	ids := make([]string, 60)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	creds := NewGenerator([]string{"holly"}, rand.New(rand.NewPCG(5, 6))).Issue(ids)
	seen := make(map[string]string, len(creds))
	for id, c := range creds {
		if other, dup := seen[c.Password]; dup {
			t.Errorf("%s and %s share password %q", id, other, c.Password)
		}
		seen[c.Password] = id
	}
}
