package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestProcessDomainsRespectsConcurrencyCap(t *testing.T) {
	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		w.Write([]byte("ok"))
	}))
	defer server.Close()

	domains := make([]string, 0, 52)
	for i := 0; i < 50; i++ {
		domains = append(domains, fmt.Sprintf("%s/site-%d", server.URL, i))
	}
	// Blank and comment lines must be skipped, not reported
	domains = append(domains, "", "# not a domain")

	p := newTestProber(t, testConfig())

	seen := make(map[string]bool)
	for outcome := range p.ProcessDomains(context.Background(), domains, 5) {
		if seen[outcome.Domain] {
			t.Errorf("duplicate outcome for %q", outcome.Domain)
		}
		seen[outcome.Domain] = true
	}

	if len(seen) != 50 {
		t.Errorf("got %d outcomes, want 50", len(seen))
	}
	if maxInFlight > 5 {
		t.Errorf("max in-flight probes = %d, want <= 5", maxInFlight)
	}
}

func TestProcessDomainsEveryDomainGetsOneOutcome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	// Mix of reachable, unreachable and skipped inputs; the batch must
	// survive all of them.
	domains := []string{
		server.URL + "/a",
		"127.0.0.1:1",
		"",
		"# comment",
		server.URL + "/b",
	}

	p := newTestProber(t, testConfig())

	count := 0
	for range p.ProcessDomains(context.Background(), domains, 2) {
		count++
	}
	if count != 3 {
		t.Errorf("got %d outcomes, want 3", count)
	}
}

func TestProcessDomainsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	domains := make([]string, 100)
	for i := range domains {
		domains[i] = fmt.Sprintf("%s/site-%d", server.URL, i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := newTestProber(t, testConfig())

	results := p.ProcessDomains(ctx, domains, 2)
	cancel()

	// The channel must drain and close without hanging; partial output
	// is fine.
	count := 0
	for range results {
		count++
	}
	if count > len(domains) {
		t.Errorf("got %d outcomes, more than submitted", count)
	}
}
