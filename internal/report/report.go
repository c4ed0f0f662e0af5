// Package report assembles a two-city comparison from cached forecasts and a
// user profile. It is the glue between the weather service and the planner.
package report

import (
	"time"

	"github.com/i474232898/moveguider/internal/common"
	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/weather"
)

// DefaultWorkout is the workout length used when none is requested.
const DefaultWorkout = time.Hour

// Options control one report build.
type Options struct {
	Home    *time.Location
	Ref     planner.RefDate
	Policy  planner.MidnightPolicy
	Workout time.Duration
	TopN    int
	Metrics []planner.Metric
	Now     time.Time
}

// CityReport holds everything derived from one city's forecast.
type CityReport struct {
	City       string                     `json:"city"`
	Short      string                     `json:"short"`
	TimeZone   string                     `json:"timezone"`
	Providers  []string                   `json:"providers"`
	Hours      int                        `json:"hours"`
	Series     weather.ForecastSeries     `json:"-"`
	Zones      []planner.ComfortZone      `json:"comfortZones"`
	BestPerDay []planner.WorkoutCandidate `json:"bestPerDay"`
	Top        []planner.WorkoutCandidate `json:"topWindows"`
	Hydration  []planner.HydrationPoint   `json:"hydration"`
}

// Report is the full comparison payload.
type Report struct {
	ID            string                                       `json:"id"`
	GeneratedAt   time.Time                                    `json:"generatedAt"`
	ReferenceDate string                                       `json:"referenceDate"`
	HomeZone      string                                       `json:"homeZone"`
	MidnightRule  string                                       `json:"midnightPolicy"`
	Profile       string                                       `json:"profile"`
	Settings      profile.Settings                             `json:"settings"`
	Cities        []CityReport                                 `json:"cities"`
	Routine       []planner.ProjectedTask                      `json:"routine"`
	Skipped       []string                                     `json:"skippedTasks,omitempty"`
	Energy        []planner.EnergyPoint                        `json:"energy"`
	Frames        map[planner.Metric][]planner.ComparisonPoint `json:"frames"`
	Sun           []planner.SunMarker                          `json:"sun"`
	Wheel         []planner.WheelSeries                        `json:"wheel"`
	Errors        []string                                     `json:"errors,omitempty"`
}

// Build derives every chart and recommendation for the comparison. Cities
// without data are left out of the per-city sections and reported in Errors.
func Build(cmp weather.Comparison, profileName string, prof profile.Profile, opts Options) Report {
	if opts.Home == nil {
		opts.Home = time.UTC
	}
	if opts.Workout <= 0 {
		opts.Workout = DefaultWorkout
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = []planner.Metric{planner.MetricTemperature, planner.MetricHumidity}
	}

	r := Report{
		ID:            cmp.ID,
		GeneratedAt:   opts.Now,
		ReferenceDate: opts.Ref.String(),
		HomeZone:      opts.Home.String(),
		MidnightRule:  opts.Policy.String(),
		Profile:       profileName,
		Settings:      prof.Settings,
		Errors:        cmp.Errors,
		Frames:        make(map[planner.Metric][]planner.ComparisonPoint),
	}

	var (
		targets []planner.Target
		cities  []planner.CitySeries
	)
	for _, s := range []*weather.ForecastSeries{cmp.Series1, cmp.Series2} {
		if s == nil || s.Len() == 0 {
			continue
		}
		targets = append(targets, planner.Target{City: s.City, Zone: s.Loc()})
		cities = append(cities, planner.CitySeries{Name: common.ShortName(s.City), Series: *s})
	}

	proj := planner.ProjectRoutine(prof.Routine, opts.Home, opts.Ref, targets, opts.Policy)
	r.Routine = proj.Tasks
	for _, skipped := range proj.Skipped {
		r.Skipped = append(r.Skipped, skipped.Error())
	}

	for i, c := range cities {
		busy := planner.BusyFromTasks(proj.Tasks, i)
		r.Cities = append(r.Cities, CityReport{
			City:       c.Series.City,
			Short:      c.Name,
			TimeZone:   c.Series.TimeZone,
			Providers:  c.Series.Providers,
			Hours:      c.Series.Len(),
			Series:     c.Series,
			Zones:      planner.ClassifyComfortZones(c.Series, opts.Ref),
			BestPerDay: planner.BestPerDay(c.Series, busy, opts.Workout),
			Top:        planner.TopN(c.Series, busy, opts.Workout, opts.TopN),
			Hydration:  planner.Hydration(c.Series, prof.Settings.WeightKg),
		})
	}

	r.Energy = planner.EnergyCurve(prof.Settings.Wake(), prof.Settings.Sleep(), prof.Settings.ChronotypeValue())
	for _, m := range opts.Metrics {
		r.Frames[m] = planner.UnifiedFrame(opts.Home, m, cities...)
	}
	r.Sun = planner.SunMarkers(opts.Home, cities...)
	r.Wheel = planner.ComfortWheel(cities...)

	return r
}
