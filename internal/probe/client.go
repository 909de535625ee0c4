package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
	"golang.org/x/time/rate"

	"wpcheck/internal/config"
)

// Client bundles the shared HTTP transport used by all concurrent
// probes: a pooled TCP client, an optional HTTP/3 client, the global
// rate limiter and the resolved-IP tracker. It is safe for concurrent
// use; probes only read from it.
type Client struct {
	httpClient  *http.Client
	h3Client    *http.Client
	h3Transport *http3.Transport
	limiter     *rate.Limiter
	tracker     *IPTracker
}

// NewClient creates the shared client from the configuration.
func NewClient(cfg *config.Config) *Client {
	tracker := NewIPTracker()

	dialer := &net.Dialer{
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.Insecure,
		MinVersion:         tls.VersionTLS12,
	}

	transport := &http.Transport{
		DialContext:         tracker.DialContext(dialer),
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	// Redirect following stays in the transport layer: the prober only
	// ever sees the final response, or a residual 3xx when following is
	// disabled.
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		if len(via) >= cfg.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
		}
		return nil
	}
	if !cfg.FollowRedirects {
		checkRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:       time.Duration(cfg.Timeout) * time.Second,
			Transport:     transport,
			CheckRedirect: checkRedirect,
		},
		tracker: tracker,
	}

	if cfg.HTTP3 {
		c.h3Transport = &http3.Transport{
			TLSClientConfig: tlsConfig.Clone(),
		}
		c.h3Client = &http.Client{
			Timeout:       time.Duration(cfg.Timeout) * time.Second,
			Transport:     c.h3Transport,
			CheckRedirect: checkRedirect,
		}
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return c
}

// Wait blocks until the global rate limiter admits one more request.
func (c *Client) Wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Do executes the request, over QUIC when h3 is set.
func (c *Client) Do(req *http.Request, h3 bool) (*http.Response, error) {
	if h3 && c.h3Client != nil {
		return c.h3Client.Do(req)
	}
	return c.httpClient.Do(req)
}

// SupportsHTTP3 reports whether an HTTP/3 client was configured.
func (c *Client) SupportsHTTP3() bool {
	return c.h3Client != nil
}

// ResolvedIP returns the IP a hostname dialed to, if one was recorded.
func (c *Client) ResolvedIP(hostname string) string {
	return c.tracker.Lookup(hostname)
}

// Close releases idle connections and the QUIC transport.
func (c *Client) Close() error {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	if c.h3Transport != nil {
		return c.h3Transport.Close()
	}
	return nil
}
