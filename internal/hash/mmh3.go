package hash

import (
	"strconv"

	"github.com/twmb/murmur3"
)

// Fingerprint returns the murmur3 32-bit hash of a page body as a
// decimal string. PBN sites and parking providers reuse templates, so
// identical fingerprints across different domains are a strong signal
// that the pages come from the same operator.
func Fingerprint(body []byte) string {
	return strconv.FormatUint(uint64(murmur3.Sum32(body)), 10)
}
