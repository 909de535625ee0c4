package output

import (
	"fmt"
	"io"
	"sort"

	"wpcheck/internal/classify"
)

// Summary aggregates completed outcomes for the end-of-run report:
// counts per status plus groups of domains that served byte-identical
// pages (same body fingerprint), which usually means a shared parking
// or PBN template.
type Summary struct {
	Total    int
	byStatus map[string]int
	byHash   map[string][]string
}

func NewSummary() *Summary {
	return &Summary{
		byStatus: make(map[string]int),
		byHash:   make(map[string][]string),
	}
}

// Add records one completed outcome.
func (s *Summary) Add(o Outcome) {
	s.Total++
	s.byStatus[o.Status]++
	if o.BodyMMH3 != "" {
		s.byHash[o.BodyMMH3] = append(s.byHash[o.BodyMMH3], o.Domain)
	}
}

// Count returns the number of outcomes with the given status.
func (s *Summary) Count(status string) int {
	return s.byStatus[status]
}

// DuplicateGroups returns the domain groups sharing a body fingerprint,
// largest first. Groups of one are omitted.
func (s *Summary) DuplicateGroups() [][]string {
	var groups [][]string
	for _, domains := range s.byHash {
		if len(domains) > 1 {
			sort.Strings(domains)
			groups = append(groups, domains)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return groups[i][0] < groups[j][0]
	})
	return groups
}

// Print writes the human-readable summary block.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	for _, status := range classify.Statuses() {
		if n := s.byStatus[status]; n > 0 {
			fmt.Fprintf(w, "%-28s: %d\n", status, n)
		}
	}

	groups := s.DuplicateGroups()
	if len(groups) > 0 {
		fmt.Fprintf(w, "\n=== DUPLICATE CONTENT ===\n")
		for _, g := range groups {
			fmt.Fprintf(w, "%d domains share one template: %v\n", len(g), g)
		}
	}
}
