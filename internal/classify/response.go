package classify

import "fmt"

// Result is the classified view of a single probe: the taxonomy status
// plus whatever was observed on the wire.
type Result struct {
	Status     string
	HTTPStatus int    // 0 when no response was obtained
	FinalURL   string // empty on total transport failure
	Notes      string
}

// Response maps an HTTP response into the outcome taxonomy. The scheme
// is the one used for the request that produced the response and only
// feeds the diagnostic note. On 2xx pages the WordPress check runs
// first and wins even when parking keywords are also present.
func Response(statusCode int, finalURL, body, scheme string) Result {
	r := Result{HTTPStatus: statusCode, FinalURL: finalURL}

	switch {
	case statusCode >= 200 && statusCode < 300:
		switch {
		case IsWordPress(body):
			r.Status = StatusActiveWordPress
			r.Notes = fmt.Sprintf("wp_markers_found (%s)", scheme)
		case IsParkingPage(body):
			r.Status = StatusParkedOrExpired
			r.Notes = fmt.Sprintf("parking_keywords_found (%s)", scheme)
		default:
			r.Status = StatusActiveNonWordPress
			r.Notes = fmt.Sprintf("no_wp_markers (%s)", scheme)
		}

	case statusCode >= 300 && statusCode < 400:
		// A residual 3xx the transport did not follow. The host is
		// alive, just behaving oddly.
		r.Status = StatusActiveNonWordPress
		r.Notes = fmt.Sprintf("3xx_status (%s)", scheme)

	case statusCode >= 400 && statusCode < 600:
		// The server exists but refuses the page. Registrars serve
		// parking banners on error pages too, so check for those.
		if IsParkingPage(body) {
			r.Status = StatusParkedOrExpired
			r.Notes = fmt.Sprintf("http_%d_parking (%s)", statusCode, scheme)
		} else {
			r.Status = StatusUnreachable
			r.Notes = fmt.Sprintf("http_%d (%s)", statusCode, scheme)
		}

	default:
		r.Status = StatusUnreachable
		r.Notes = fmt.Sprintf("unexpected_status (%s)", scheme)
	}

	return r
}
