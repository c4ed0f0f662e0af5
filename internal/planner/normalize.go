package planner

import "time"

// Normalize converts a home-zone time of day to an instant in the target zone
// on the reference date.
//
// The time is anchored on ref in the home zone first and only then converted,
// so the home zone's offset for that date decides the shift. After conversion
// the date is forced back to ref, keeping the converted wall-clock time and
// zone. A conversion that crosses midnight therefore keeps only its time of
// day.
func Normalize(tod TimeOfDay, home *time.Location, ref RefDate, target *time.Location) time.Time {
	converted := ref.At(tod, home).In(target)
	return time.Date(ref.Year, ref.Month, ref.Day,
		converted.Hour(), converted.Minute(), converted.Second(), 0, target)
}

// NormalizeInterval normalizes both ends of a home-zone interval and applies
// the midnight policy when the converted end is not after the converted start.
func NormalizeInterval(start, end TimeOfDay, home *time.Location, ref RefDate, target *time.Location, policy MidnightPolicy) (time.Time, time.Time) {
	s := Normalize(start, home, ref, target)
	e := Normalize(end, home, ref, target)
	if policy == SpanNextDay && !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return s, e
}
