package cdn

import (
	"net/http"
	"strings"
)

// rule matches a CDN or parking provider from a response header.
type rule struct {
	Name        string
	HeaderKey   string
	HeaderValue string // empty means the header just has to exist
}

// Parking providers sit alongside the usual CDNs here: a Sedo or
// ParkingCrew edge in front of a domain corroborates a parked verdict.
var providerRules = []rule{
	{Name: "Cloudflare", HeaderKey: "Cf-Ray"},
	{Name: "Cloudflare", HeaderKey: "Server", HeaderValue: "cloudflare"},
	{Name: "CloudFront", HeaderKey: "X-Amz-Cf-Id"},
	{Name: "CloudFront", HeaderKey: "X-Amz-Cf-Pop"},
	{Name: "Fastly", HeaderKey: "X-Fastly-Request-Id"},
	{Name: "Akamai", HeaderKey: "X-Akamai-Transformed"},
	{Name: "Sucuri", HeaderKey: "X-Sucuri-Id"},
	{Name: "SedoParking", HeaderKey: "Server", HeaderValue: "sedoparking"},
	{Name: "ParkingCrew", HeaderKey: "Server", HeaderValue: "parkingcrew"},
	{Name: "Bodis", HeaderKey: "X-Served-By", HeaderValue: "bodis"},
}

// Detect checks response headers for CDN or parking-provider edges.
func Detect(headers http.Header) (bool, string) {
	for _, r := range providerRules {
		val := headers.Get(r.HeaderKey)
		if val == "" {
			continue
		}
		if r.HeaderValue == "" {
			return true, r.Name
		}
		if strings.Contains(strings.ToLower(val), r.HeaderValue) {
			return true, r.Name
		}
	}

	// Via header carries the edge name for some providers
	via := strings.ToLower(headers.Get("Via"))
	switch {
	case strings.Contains(via, "cloudfront"):
		return true, "CloudFront"
	case strings.Contains(via, "varnish"):
		return true, "Varnish"
	}

	if xcdn := headers.Get("X-CDN"); xcdn != "" {
		return true, xcdn
	}

	return false, ""
}
