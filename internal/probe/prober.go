package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wpcheck/internal/cdn"
	"wpcheck/internal/classify"
	"wpcheck/internal/config"
	"wpcheck/internal/hash"
	"wpcheck/internal/output"
	"wpcheck/internal/parser"
	"wpcheck/internal/storage"
	"wpcheck/internal/tech"
	"wpcheck/pkg/useragent"
)

// Prober runs the per-domain probe sequence: build the candidate URLs,
// walk them in order, classify the first response obtained or the last
// transport error once every candidate has failed.
type Prober struct {
	client *Client
	config *config.Config
	tech   *tech.Detector // nil unless tech detection is enabled
}

// NewProber creates a Prober with a shared HTTP client.
func NewProber(cfg *config.Config) (*Prober, error) {
	p := &Prober{
		client: NewClient(cfg),
		config: cfg,
	}
	if cfg.TechDetect {
		detector, err := tech.NewDetector()
		if err != nil {
			return nil, fmt.Errorf("failed to init tech detector: %w", err)
		}
		p.tech = detector
	}
	return p, nil
}

// Close releases the prober's transport resources.
func (p *Prober) Close() error {
	return p.client.Close()
}

// ProbeDomain probes one domain. ok is false when the input is blank or
// a comment line and no outcome should be reported. Every other path
// produces exactly one outcome: a single domain's failure never
// surfaces as an error.
func (p *Prober) ProbeDomain(ctx context.Context, domain string) (output.Outcome, bool) {
	domain = strings.TrimSpace(domain)
	if domain == "" || strings.HasPrefix(domain, "#") {
		return output.Outcome{}, false
	}

	candidates := parser.CandidateURLs(domain)
	if len(candidates) == 0 {
		return output.Outcome{}, false
	}

	var lastErr error
	for _, candidate := range candidates {
		scheme := parser.SchemeOf(candidate)

		resp, body, elapsed, err := p.fetch(ctx, candidate, scheme)
		if err != nil {
			// No response at all: remember the error and fall through
			// to the next candidate.
			lastErr = err
			p.config.Logger.Debug("candidate failed",
				"domain", domain,
				"url", candidate,
				"error", err,
			)
			continue
		}

		// Any response settles the domain, even an error page. Only a
		// failed request triggers fallback.
		return p.buildOutcome(domain, scheme, resp, body, elapsed), true
	}

	res := classify.TransportError(lastErr)
	return output.Outcome{
		Domain: domain,
		Status: res.Status,
		Notes:  res.Notes,
	}, true
}

// fetch issues a single GET for a candidate and reads a bounded slice
// of the body. For https candidates with HTTP/3 enabled, QUIC is tried
// first; a failure there falls back to TCP for the same URL before the
// candidate is declared failed.
func (p *Prober) fetch(ctx context.Context, candidate, scheme string) (*http.Response, []byte, time.Duration, error) {
	if err := p.client.Wait(ctx); err != nil {
		return nil, nil, 0, err
	}

	if scheme == "https" && p.client.SupportsHTTP3() {
		resp, body, elapsed, err := p.get(ctx, candidate, true)
		if err == nil {
			return resp, body, elapsed, nil
		}
		p.config.Logger.Debug("http3 attempt failed, retrying over tcp",
			"url", candidate,
			"error", err,
		)
	}

	return p.get(ctx, candidate, false)
}

func (p *Prober) get(ctx context.Context, candidate string, h3 bool) (*http.Response, []byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return nil, nil, 0, err
	}

	req.Header.Set("User-Agent", useragent.Get(p.config.UserAgent, p.config.RandomUserAgent))
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := p.client.Do(req, h3)
	elapsed := time.Since(start)
	if err != nil {
		return nil, nil, elapsed, err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, p.config.MaxBodySize))
	if readErr != nil {
		// A response was obtained, so the domain is classified with
		// whatever body arrived.
		p.config.Logger.Debug("partial body read",
			"url", candidate,
			"read", len(body),
			"error", readErr,
		)
	}

	return resp, body, elapsed, nil
}

// buildOutcome classifies a response and assembles the terminal record.
func (p *Prober) buildOutcome(domain, scheme string, resp *http.Response, body []byte, elapsed time.Duration) output.Outcome {
	finalURL := resp.Request.URL.String()
	res := classify.Response(resp.StatusCode, finalURL, string(body), scheme)

	o := output.Outcome{
		Domain:     domain,
		Status:     res.Status,
		HTTPStatus: res.HTTPStatus,
		FinalURL:   res.FinalURL,
		Notes:      res.Notes,
		Scheme:     scheme,
		Title:      parser.ExtractTitle(string(body)),
		IP:         p.client.ResolvedIP(resp.Request.URL.Hostname()),
		BodyMMH3:   hash.Fingerprint(body),
		Time:       elapsed.String(),
	}

	if p.tech != nil {
		o.Technologies = p.tech.Detect(resp.Header, body)
	}

	if p.config.DetectCDN {
		o.CDN, o.CDNName = cdn.Detect(resp.Header)
	}

	if p.config.StoreEvidence {
		path, err := storage.Store(p.config.EvidenceDir, resp.Request.URL, resp.Header, body, finalURL)
		if err != nil {
			p.config.Logger.Warn("failed to store evidence",
				"domain", domain,
				"error", err,
			)
		} else {
			o.EvidencePath = path
		}
	}

	p.config.Logger.Debug("probe completed",
		"domain", domain,
		"status", o.Status,
		"http_status", o.HTTPStatus,
		"duration", elapsed,
	)

	return o
}
