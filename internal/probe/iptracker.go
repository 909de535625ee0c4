package probe

import (
	"context"
	"net"
	"sync"
)

// IPTracker records the IP each hostname actually dialed to. Many PBN
// domains resolve to a handful of shared hosts, so the resolved IP is
// reported alongside the classification.
type IPTracker struct {
	ips sync.Map // hostname -> IP string
}

func NewIPTracker() *IPTracker {
	return &IPTracker{}
}

// Lookup returns the recorded IP for a hostname, or "".
func (t *IPTracker) Lookup(hostname string) string {
	if val, ok := t.ips.Load(hostname); ok {
		return val.(string)
	}
	return ""
}

// DialContext wraps a dialer so every successful connection records the
// remote IP under the dialed hostname.
func (t *IPTracker) DialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		host, _, splitErr := net.SplitHostPort(addr)
		if splitErr != nil {
			host = addr
		}
		if remote := conn.RemoteAddr(); remote != nil {
			if ip, _, err := net.SplitHostPort(remote.String()); err == nil {
				t.ips.Store(host, ip)
			}
		}

		return conn, nil
	}
}
