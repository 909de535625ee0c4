package classify

// Outcome statuses. Every probe result, including DNS failures, TLS
// failures, timeouts and HTTP error pages, folds into one of these
// four values; no other error type reaches the caller.
const (
	StatusActiveWordPress    = "AKTIF_WORDPRESS"
	StatusActiveNonWordPress = "AKTIF_NON_WORDPRESS"
	StatusParkedOrExpired    = "PARKED_ATAU_MUNGKIN_EXPIRED"
	StatusUnreachable        = "ERROR_TIDAK_BISA_DIBUKA"
)

// Statuses returns the taxonomy in display order for summary output.
func Statuses() []string {
	return []string{
		StatusActiveWordPress,
		StatusActiveNonWordPress,
		StatusParkedOrExpired,
		StatusUnreachable,
	}
}
