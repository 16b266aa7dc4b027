package core

import (
	"strings"
	"time"
)

// Datetime values travel as ISO-8601 strings with the fractional part pinned
// to .000, in UTC. Parsing is lenient about the fractional part because
// drivers report stored values without it.
const (
	dateTimeLayout      = "2006-01-02 15:04:05.000"
	dateTimeShortLayout = "2006-01-02 15:04:05"
	dateOnlyLayout      = "2006-01-02"
)

// FormatDateTime renders t in the on-wire datetime form.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// ParseDateTime parses the on-wire datetime form. Missing fractional seconds
// and a missing time-of-day part are accepted; anything else fails with a
// ConversionError.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateTimeLayout, dateTimeShortLayout, dateOnlyLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewConversionError("cannot parse time %q", s)
}
