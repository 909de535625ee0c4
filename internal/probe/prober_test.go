package probe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wpcheck/internal/classify"
	"wpcheck/internal/config"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func newTestProber(t *testing.T, cfg *config.Config) *Prober {
	t.Helper()
	p, err := NewProber(cfg)
	if err != nil {
		t.Fatalf("NewProber() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProbeDomainSkipsBlanksAndComments(t *testing.T) {
	p := newTestProber(t, testConfig())

	for _, input := range []string{"", "   ", "# comment", "  # indented comment"} {
		if _, ok := p.ProbeDomain(context.Background(), input); ok {
			t.Errorf("ProbeDomain(%q) produced an outcome, want skip", input)
		}
	}
}

func TestProbeDomainWordPressSite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Blog</title><link href="/wp-content/themes/x.css"></head></html>`))
	}))
	defer server.Close()

	p := newTestProber(t, testConfig())

	outcome, ok := p.ProbeDomain(context.Background(), server.URL)
	if !ok {
		t.Fatal("expected an outcome")
	}
	if outcome.Status != classify.StatusActiveWordPress {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusActiveWordPress)
	}
	if outcome.HTTPStatus != 200 {
		t.Errorf("HTTPStatus = %d, want 200", outcome.HTTPStatus)
	}
	if outcome.Notes != "wp_markers_found (http)" {
		t.Errorf("Notes = %q", outcome.Notes)
	}
	if outcome.Title != "Blog" {
		t.Errorf("Title = %q, want Blog", outcome.Title)
	}
	if outcome.BodyMMH3 == "" {
		t.Error("BodyMMH3 is empty")
	}
}

func TestProbeDomainParkedSite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("This domain is for sale. Buy this domain today!"))
	}))
	defer server.Close()

	p := newTestProber(t, testConfig())

	outcome, _ := p.ProbeDomain(context.Background(), server.URL)
	if outcome.Status != classify.StatusParkedOrExpired {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusParkedOrExpired)
	}
}

func TestProbeDomainErrorPageDoesNotFallBack(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := newTestProber(t, testConfig())

	// An http:// input has a single candidate, but the invariant under
	// test is broader: a 404 is a received response and must terminate
	// the probe with a classification, not trigger another attempt.
	outcome, _ := p.ProbeDomain(context.Background(), server.URL)
	if outcome.Status != classify.StatusUnreachable {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusUnreachable)
	}
	if outcome.HTTPStatus != 404 {
		t.Errorf("HTTPStatus = %d, want 404", outcome.HTTPStatus)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestProbeDomainFallsBackFromHTTPSToHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>plain site</body></html>"))
	}))
	defer server.Close()

	p := newTestProber(t, testConfig())

	// Bare host:port input: the https candidate hits a plain-HTTP
	// listener and fails the TLS handshake, so the prober must fall
	// back to the http candidate and classify its response.
	host := strings.TrimPrefix(server.URL, "http://")
	outcome, ok := p.ProbeDomain(context.Background(), host)
	if !ok {
		t.Fatal("expected an outcome")
	}
	if outcome.Status != classify.StatusActiveNonWordPress {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusActiveNonWordPress)
	}
	if outcome.Scheme != "http" {
		t.Errorf("Scheme = %q, want http (fallback)", outcome.Scheme)
	}
	if outcome.Notes != "no_wp_markers (http)" {
		t.Errorf("Notes = %q", outcome.Notes)
	}
}

func TestProbeDomainAllCandidatesFail(t *testing.T) {
	p := newTestProber(t, testConfig())

	// Port 1 is essentially never open; both candidates fail at the
	// transport level and the last error is classified.
	outcome, ok := p.ProbeDomain(context.Background(), "127.0.0.1:1")
	if !ok {
		t.Fatal("expected an outcome")
	}
	if outcome.Status != classify.StatusUnreachable {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusUnreachable)
	}
	if outcome.HTTPStatus != 0 {
		t.Errorf("HTTPStatus = %d, want 0 (no response)", outcome.HTTPStatus)
	}
	if outcome.FinalURL != "" {
		t.Errorf("FinalURL = %q, want empty", outcome.FinalURL)
	}
	if outcome.Notes == "" {
		t.Error("Notes is empty, want error summary")
	}
}

func TestProbeDomainFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<script src="/wp-includes/js/x.js"></script>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := newTestProber(t, testConfig())

	outcome, _ := p.ProbeDomain(context.Background(), server.URL+"/old")
	if outcome.Status != classify.StatusActiveWordPress {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusActiveWordPress)
	}
	if !strings.HasSuffix(outcome.FinalURL, "/new") {
		t.Errorf("FinalURL = %q, want redirect target", outcome.FinalURL)
	}
	if outcome.HTTPStatus != 200 {
		t.Errorf("HTTPStatus = %d, want 200 after redirect", outcome.HTTPStatus)
	}
}

func TestProbeDomainResidualRedirectWhenFollowingDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.FollowRedirects = false
	p := newTestProber(t, cfg)

	outcome, _ := p.ProbeDomain(context.Background(), server.URL)
	if outcome.Status != classify.StatusActiveNonWordPress {
		t.Errorf("Status = %q, want %q", outcome.Status, classify.StatusActiveNonWordPress)
	}
	if outcome.Notes != "3xx_status (http)" {
		t.Errorf("Notes = %q", outcome.Notes)
	}
	if outcome.HTTPStatus != 301 {
		t.Errorf("HTTPStatus = %d, want 301", outcome.HTTPStatus)
	}
}
