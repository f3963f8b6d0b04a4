package models

import "strings"

// NormalizeDate trims a timestamp like "2024-01-02T00:00:00.000Z" down to
// its YYYY-MM-DD date part. The remote returns full timestamps for cells it
// stores as dates; locally only the calendar date is kept.
func NormalizeDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
