package dates

import (
	"strings"
	"time"
)

// Canonical is the storage layout for every date column (DD-MM-YYYY).
const Canonical = "02-01-2006"

// formats are tried in order; the first strict match wins. The order is a
// deliberate tie-break for ambiguous inputs like "01-02-2024" (ISO first,
// then US, then European).
var formats = []string{
	"2006-01-02",
	"01-02-2006",
	"02-01-2006",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 02, 2006",
	"02 Jan 2006",
	"20060102",
	"01022006",
}

// Normalize converts an arbitrary date string to canonical DD-MM-YYYY form.
// Blank input is valid-and-empty (absence is not an error). When no format
// matches, the trimmed raw string is returned with invalid=true so callers
// can keep the raw value instead of dropping it.
func Normalize(input string) (value string, invalid bool) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", false
	}
	for _, layout := range formats {
		if t, ok := parseStrict(raw, layout); ok {
			return t.Format(Canonical), false
		}
	}
	return raw, true
}

// ParseCanonical converts a stored date string into a comparable time.Time.
// Only the canonical DD-MM-YYYY form and ISO YYYY-MM-DD are accepted.
func ParseCanonical(s string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	for _, layout := range []string{Canonical, "2006-01-02"} {
		if t, ok := parseStrict(raw, layout); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseStrict accepts only inputs that match the layout exactly. Go's
// time.Parse tolerates unpadded numbers and case-folded month names, so a
// round trip through Format is required to reject lenient matches.
func parseStrict(s, layout string) (time.Time, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(layout) != s {
		return time.Time{}, false
	}
	return t, true
}
