package classify

import "strings"

// TransportError maps a failed-to-connect error into the taxonomy.
// This is best-effort sniffing on the error text; the wording of the
// underlying network stack is the only signal available, so the rules
// live here where they can be revisited without touching the prober.
//
// A DNS resolution failure is taken as a hint that the domain may be
// expired or unregistered. Anything unrecognized (connection refused
// included) stays generic.
func TransportError(err error) Result {
	var msg string
	if err != nil {
		msg = strings.ToLower(err.Error())
	}

	switch {
	case strings.Contains(msg, "name or service not known"),
		strings.Contains(msg, "nxdomain"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "not known"):
		return Result{Status: StatusParkedOrExpired, Notes: "dns_error: " + msg}

	case strings.Contains(msg, "timed out"),
		strings.Contains(msg, "timeout"):
		return Result{Status: StatusUnreachable, Notes: "timeout: " + msg}

	case strings.Contains(msg, "ssl"),
		strings.Contains(msg, "certificate"):
		return Result{Status: StatusUnreachable, Notes: "ssl_error: " + msg}
	}

	return Result{Status: StatusUnreachable, Notes: msg}
}
