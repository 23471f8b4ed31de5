// Package timeutil formats request timestamps.
package timeutil

import "time"

// ISOLocalLayout renders local wall clock time with milliseconds and a
// numeric offset, e.g. 2024-01-01T07:00:00.000+07:00.
const ISOLocalLayout = "2006-01-02T15:04:05.000-07:00"

// NowISOLocal returns the current local time in ISOLocalLayout.
func NowISOLocal() string {
	return FormatISOLocal(time.Now())
}

// FormatISOLocal renders t in its own location using ISOLocalLayout.
// UTC is rendered as +00:00, never Z.
func FormatISOLocal(t time.Time) string {
	return t.Format(ISOLocalLayout)
}
