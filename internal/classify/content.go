package classify

import "strings"

// snippetLimit caps how much body text the signature checks inspect.
// Real WordPress markers and parking banners show up well within the
// first few kilobytes.
const snippetLimit = 4000

var wordpressMarkers = []string{
	"wp-content",
	"wp-includes",
	"wp-json",
	`content="wordpress`,
	`generator" content="wordpress`,
}

var parkingKeywords = []string{
	"buy this domain",
	"this domain is for sale",
	"domain is parked",
	"parkingcrew",
	"sedo",
	"afternic",
	"dan.com",
	"expired domain",
	"has expired",
	"renew it now",
}

// snippet returns the lower-cased prefix of body used for matching.
func snippet(body string) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return strings.ToLower(body)
}

// IsWordPress reports whether the body carries a WordPress signature.
func IsWordPress(body string) bool {
	if body == "" {
		return false
	}
	lower := snippet(body)
	for _, marker := range wordpressMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsParkingPage reports whether the body looks like a parked or
// for-sale placeholder page.
func IsParkingPage(body string) bool {
	if body == "" {
		return false
	}
	lower := snippet(body)
	for _, keyword := range parkingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
