package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, "index") //nolint:errcheck
			return
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPage(t *testing.T) {
	srv := newTestSite(t, map[string]string{"/ana.html": "ana page"})
	c := New(srv.URL + "/")

	body, err := c.GetPage(context.Background(), "ana")
	if err != nil {
		t.Fatalf("GetPage() error: %v", err)
	}
	if string(body) != "ana page" {
		t.Errorf("body = %q, want %q", body, "ana page")
	}

	idx, err := c.GetIndex(context.Background())
	if err != nil {
		t.Fatalf("GetIndex() error: %v", err)
	}
	if string(idx) != "index" {
		t.Errorf("index = %q", idx)
	}
}

func TestGetPage_NotFound(t *testing.T) {
	srv := newTestSite(t, nil)
	_, err := New(srv.URL).GetPage(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for missing page")
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("IsStatus(err, 404) = false for %v", err)
	}
	if IsStatus(err, http.StatusUnauthorized) {
		t.Error("IsStatus(err, 401) = true for a 404")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 404") {
		t.Errorf("error = %q, want it to contain 'HTTP 404'", got)
	}
}

func TestPageURLEscapes(t *testing.T) {
	c := New("https://x.io/santa")
	if got, want := c.PageURL("mary jane"), "https://x.io/santa/mary%20jane.html"; got != want {
		t.Errorf("PageURL() = %q, want %q", got, want)
	}
}

func TestCheck(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/ana.html": "current",
		"/ben.html": "old run",
		"/cal.html": "anything",
	})
	c := New(srv.URL)
	local := map[string][]byte{
		"ana": []byte("current"),
		"ben": []byte("new run"),
	}
	got := c.Check(context.Background(), []string{"ana", "ben", "cal", "dee"}, local)
	if len(got) != 4 {
		t.Fatalf("got %d statuses, want 4", len(got))
	}

	if !got[0].Current || got[0].Err != nil {
		t.Errorf("ana: %+v, want current", got[0])
	}
	if got[1].Current || got[1].Err == nil || !strings.Contains(got[1].Err.Error(), "different generation") {
		t.Errorf("ben: %+v, want stale error", got[1])
	}
	if !got[2].Current {
		t.Errorf("cal: %+v, want current when no local copy is known", got[2])
	}
	if !IsStatus(got[3].Err, http.StatusNotFound) {
		t.Errorf("dee: %+v, want 404", got[3])
	}
}
