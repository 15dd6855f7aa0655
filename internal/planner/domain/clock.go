package domain

import "time"

// Clock supplies the current instant, seamed for deterministic tests.
// The planner never calls time.Now directly; every component that needs
// "now" receives it through a Clock so a rebuild can be replayed exactly.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the real wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock returns a fixed instant, used by tests.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// DefaultTimezone is applied when a Settings row has no timezone set.
const DefaultTimezone = "+07:00"

// ResolveLocation parses a settings timezone string (either an IANA name
// like "Asia/Jakarta" or a fixed offset like "+07:00") into a *time.Location.
// Unknown or empty values fall back to the fixed UTC+7 offset.
func ResolveLocation(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	if loc, ok := parseFixedOffset(tz); ok {
		return loc
	}
	return parseFixedOffsetOrUTC(DefaultTimezone)
}

func parseFixedOffsetOrUTC(tz string) *time.Location {
	if loc, ok := parseFixedOffset(tz); ok {
		return loc
	}
	return time.UTC
}

// parseFixedOffset parses strings of the form "+07:00" or "-05:30".
func parseFixedOffset(tz string) (*time.Location, bool) {
	if len(tz) != 6 || (tz[0] != '+' && tz[0] != '-') || tz[3] != ':' {
		return nil, false
	}
	sign := 1
	if tz[0] == '-' {
		sign = -1
	}
	hh := int(tz[1]-'0')*10 + int(tz[2]-'0')
	mm := int(tz[4]-'0')*10 + int(tz[5]-'0')
	if hh > 23 || mm > 59 {
		return nil, false
	}
	offsetSeconds := sign * (hh*3600 + mm*60)
	return time.FixedZone(tz, offsetSeconds), true
}

// WeekdaySundayZero returns the weekday of t under the storage convention
// used throughout StudyFlow: Sunday=0 .. Saturday=6. This matches Go's own
// time.Weekday numbering, but the explicit helper exists so callers never
// rely on the library default by accident.
func WeekdaySundayZero(t time.Time) int {
	return int(t.Weekday())
}

// StartOfDay returns midnight of t's calendar date in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey returns the ISO calendar date string ("2006-01-02") for t in its
// own location, used to group sessions and buckets by day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
