package output

// Outcome is the terminal record for one probed domain. Exactly one is
// produced per non-skipped input domain; it is created when the probe
// finishes and never mutated afterward.
//
// HTTPStatus is 0 and FinalURL empty when no response was obtained at
// all (total transport failure). The fields past Notes are enrichment
// carried only in JSON output.
type Outcome struct {
	Domain     string `json:"domain"`
	Status     string `json:"status"`
	HTTPStatus int    `json:"http_status,omitempty"`
	FinalURL   string `json:"final_url,omitempty"`
	Notes      string `json:"notes"`

	Scheme       string   `json:"scheme,omitempty"`
	Title        string   `json:"title,omitempty"`
	IP           string   `json:"ip,omitempty"`
	BodyMMH3     string   `json:"body_mmh3,omitempty"`
	Technologies []string `json:"tech,omitempty"`
	CDN          bool     `json:"cdn,omitempty"`
	CDNName      string   `json:"cdn_name,omitempty"`
	Time         string   `json:"time,omitempty"`
	EvidencePath string   `json:"evidence_path,omitempty"`
}

// Writer serializes outcomes as they complete.
type Writer interface {
	Write(Outcome) error
}
