package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical release date format.
const DateLayout = "2006-01-02"

var (
	fullDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearRegex      = regexp.MustCompile(`^\d{4}$`)
)

// ParseReleaseDate normalizes a catalog release date to YYYY-MM-DD.
//
// Accepted inputs, tried in order:
//   - YYYY-MM-DD, optionally followed by a time after "T" or a space
//   - YYYY-MM, read as the first of the month
//   - YYYY, read as January 1st
//
// Anything else is an error; there is no guessing between formats.
func ParseReleaseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "T "); i == len("2006-01-02") {
		s = s[:i]
	}

	var layout string
	switch {
	case fullDateRegex.MatchString(s):
		layout = DateLayout
	case yearMonthRegex.MatchString(s):
		layout = "2006-01"
	case yearRegex.MatchString(s):
		layout = "2006"
	default:
		return time.Time{}, fmt.Errorf("invalid release date %q: expected YYYY-MM-DD, YYYY-MM or YYYY", raw)
	}

	parsed, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid release date %q: %w", raw, err)
	}
	return parsed, nil
}
