package forecast

import (
	"fmt"
	"strings"
	"time"
)

// LabelLayout is the month/year label format ("Mar 2024").
const LabelLayout = "Jan 2006"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
	LabelLayout,
	"January 2006",
}

// ParseDate parses a raw point date into a UTC time.
// Dates are month-granular: the written wall-clock fields are kept as-is so an
// offset never moves a point into another month.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatLabel formats a month label. Unparsed dates are passed through as
// the raw string; years the label layout cannot express degrade to "YYYY-MM".
func FormatLabel(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	if y := t.Year(); y < 1000 || y > 9999 {
		return fmt.Sprintf("%04d-%02d", y, int(t.Month()))
	}
	return t.Format(LabelLayout)
}
