// Package utils
package utils

import (
	"time"
)

const longDateLayout = "January 2, 2006"

// FormatDate renders an ISO-8601 timestamp as a long en-US date in UTC.
// Input that does not parse is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Format(longDateLayout)
}

// FormatChartTime labels a chart point. Intraday ranges keep the clock.
func FormatChartTime(t time.Time, intraday bool) string {
	if intraday {
		return t.UTC().Format("Jan 2, 03:04 PM")
	}
	return t.UTC().Format("Jan 2")
}
