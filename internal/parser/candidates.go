package parser

import "strings"

// CandidateURLs turns a raw domain token into the ordered list of URLs
// to attempt. Try-order is part of the contract:
//
//   - no scheme:    https first, then http as fallback
//   - https://...:  as given, then the http equivalent as fallback
//   - http://...:   as given only; an explicit plain-HTTP choice is
//     final and never upgraded
//
// An empty input yields an empty list; the caller must skip it.
func CandidateURLs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"):
		return []string{raw}
	case strings.HasPrefix(lower, "https://"):
		withoutScheme := raw[strings.Index(raw, "://")+len("://"):]
		return []string{raw, "http://" + withoutScheme}
	}

	return []string{"https://" + raw, "http://" + raw}
}

// SchemeOf returns the scheme tag of a candidate URL.
func SchemeOf(candidate string) string {
	if strings.HasPrefix(strings.ToLower(candidate), "https://") {
		return "https"
	}
	return "http"
}
