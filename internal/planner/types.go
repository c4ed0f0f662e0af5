// Package planner holds the pure scheduling and wellness computations behind
// the city comparison: projecting a home-zone routine onto other zones,
// classifying forecast hours, searching workout slots and deriving hydration
// and energy curves. Nothing here performs I/O or reads the wall clock.
package planner

import (
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrMalformedTime is returned for time-of-day strings that are not HH:MM.
	ErrMalformedTime = errors.New("malformed time of day")
	// ErrEmptyInterval is returned for tasks whose end is not after their start.
	ErrEmptyInterval = errors.New("task end must be after start")
)

// TimeOfDay is a wall-clock time without a date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" on a 24h clock. The hour may be a single
// digit ("9:00"); minutes must have two.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

// TimeOfDayOf returns the wall-clock time of t in its own zone.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Hours returns fractional hours since midnight.
func (t TimeOfDay) Hours() float64 {
	return float64(t.Hour) + float64(t.Minute)/60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// RefDate is the single calendar date all recurring schedules are anchored to.
type RefDate struct {
	Year  int
	Month time.Month
	Day   int
}

// RefDateOf returns the calendar date of t in its own zone.
func RefDateOf(t time.Time) RefDate {
	y, m, d := t.Date()
	return RefDate{Year: y, Month: m, Day: d}
}

// At returns the instant at tod on the reference date in loc.
func (r RefDate) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(r.Year, r.Month, r.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

func (r RefDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", r.Year, int(r.Month), r.Day)
}

// MidnightPolicy decides what happens to a projected interval whose converted
// end lands at or before its converted start once both are forced onto the
// reference date.
type MidnightPolicy int

const (
	// ClampToReferenceDate keeps both instants on the reference date even
	// when that inverts the interval. Charts then show only time-of-day.
	ClampToReferenceDate MidnightPolicy = iota
	// SpanNextDay moves the end one day forward so the interval keeps its
	// elapsed duration.
	SpanNextDay
)

// ParseMidnightPolicy maps "clamp" and "span" to a policy.
func ParseMidnightPolicy(s string) (MidnightPolicy, error) {
	switch s {
	case "", "clamp":
		return ClampToReferenceDate, nil
	case "span":
		return SpanNextDay, nil
	default:
		return ClampToReferenceDate, fmt.Errorf("unknown midnight policy %q (want clamp or span)", s)
	}
}

func (p MidnightPolicy) String() string {
	if p == SpanNextDay {
		return "span"
	}
	return "clamp"
}

// RoutineTask is a recurring daily task expressed in the home zone.
type RoutineTask struct {
	Label string `json:"task" yaml:"task"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// ProjectedTask is a routine task placed on the reference date in a target city's zone.
type ProjectedTask struct {
	Label    string    `json:"task"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Resource string    `json:"resource"`
	// Target is the index of the city in the targets passed to ProjectRoutine.
	Target   int       `json:"target"`
}

// Duration returns End - Start.
func (p ProjectedTask) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Target is a city the routine is projected onto.
type Target struct {
	City string
	Zone *time.Location
}

// Classification labels an hour for outdoor activity.
type Classification string

const (
	ClassWarning Classification = "Heat/UV Warning"
	ClassComfort Classification = "Optimal Comfort"
)

// ComfortZone is one classified forecast hour.
type ComfortZone struct {
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	Classification Classification `json:"classification"`
}

// BusyInterval is a time-of-day span that workouts must avoid. An interval
// whose End is before its Start wraps past midnight.
type BusyInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// WorkoutCandidate is a scored workout window.
type WorkoutCandidate struct {
	Start        time.Time     `json:"start"`
	Duration     time.Duration `json:"duration"`
	MeanTempC    float64       `json:"meanTemperatureC"`
	MeanHumidity float64       `json:"meanHumidityPercent"`
	MaxUV        float64       `json:"maxUvIndex"`
	Score        float64       `json:"score"`
	DayIndex     int           `json:"dayIndex"`
	Day          string        `json:"day"`
	Detail       string        `json:"detail"`
}

// End returns the exclusive end of the window.
func (c WorkoutCandidate) End() time.Time {
	return c.Start.Add(c.Duration)
}

// HydrationPoint is one hour of recommended water intake.
type HydrationPoint struct {
	Time         time.Time `json:"time"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPercent"`
	IntakeML     float64   `json:"intakeMl"`
	CumulativeML float64   `json:"cumulativeMl"`
}
