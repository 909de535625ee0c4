package tech

import (
	"net/http"
	"sort"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
)

// Detector identifies technologies from response headers and body.
// It complements the WordPress marker check: the markers decide the
// classification, the fingerprints add context (themes, CDNs, analytics)
// to the report.
type Detector struct {
	wappalyze *wappalyzer.Wappalyze
}

// NewDetector creates a technology detector.
func NewDetector() (*Detector, error) {
	wappalyze, err := wappalyzer.New()
	if err != nil {
		return nil, err
	}
	return &Detector{wappalyze: wappalyze}, nil
}

// Detect returns the sorted list of technologies fingerprinted from the
// response, or nil when nothing matched.
func (d *Detector) Detect(headers http.Header, body []byte) []string {
	if d == nil || d.wappalyze == nil {
		return nil
	}

	fingerprints := d.wappalyze.Fingerprint(headers, body)
	if len(fingerprints) == 0 {
		return nil
	}

	techs := make([]string, 0, len(fingerprints))
	for name := range fingerprints {
		techs = append(techs, name)
	}
	sort.Strings(techs)
	return techs
}
