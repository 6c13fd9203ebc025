package match

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Africa/Lagos must resolve on hosts without zoneinfo

	derr "github.com/footydigest/matchday/internal/errors"
)

const (
	// TimeZone is the zone every kickoff and "today" is rendered in.
	TimeZone = "Africa/Lagos"
	// ZoneMarker is appended to rendered kickoff times.
	ZoneMarker = "NG"

	// DateLayout is the provider's dateFrom/dateTo format.
	DateLayout    = "2006-01-02"
	kickoffLayout = "2006-01-02 03:04 PM"
)

var lagos = loadLagos()

func loadLagos() *time.Location {
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		// West Africa Time has no daylight saving.
		return time.FixedZone("WAT", 60*60)
	}
	return loc
}

// Location returns the Africa/Lagos location.
func Location() *time.Location {
	return lagos
}

// ParseKickoff parses an ISO-8601 UTC timestamp such as "2025-01-01T13:00:00Z".
// Offsets, fractional seconds and zone-less values (taken as UTC) are accepted.
// Empty or unparseable input returns an error wrapping ErrMalformedRecord.
func ParseKickoff(utcDate string) (time.Time, error) {
	s := strings.TrimSpace(utcDate)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing utcDate", derr.ErrMalformedRecord)
	}

	// Try "2025-01-01T13:00:00Z" and "2025-01-01T13:00:00+00:00"
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	// Try "2025-01-01T13:00:00.000Z"
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	// Try "2025-01-01T13:00:00" (no zone, provider dates are UTC)
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
		return t, nil
	}

	// Try "2025-01-01T13:00Z"
	if t, err := time.Parse("2006-01-02T15:04Z07:00", s); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: invalid utcDate %q", derr.ErrMalformedRecord, utcDate)
}

// FormatKickoff renders t in Africa/Lagos as "2025-01-01 02:00 PM NG".
func FormatKickoff(t time.Time) string {
	return t.In(lagos).Format(kickoffLayout) + " " + ZoneMarker
}

// Today returns the Africa/Lagos calendar date of now, e.g. "2025-01-01".
func Today(now time.Time) string {
	return now.In(lagos).Format(DateLayout)
}
