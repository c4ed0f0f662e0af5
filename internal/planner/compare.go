package planner

import (
	"math"
	"time"

	"github.com/i474232898/moveguider/internal/weather"
)

// Metric selects one forecast column.
type Metric string

const (
	MetricTemperature Metric = "Temperature (°C)"
	MetricHumidity    Metric = "Humidity (%)"
	MetricUV          Metric = "UV Index"
)

// Value extracts the metric from an observation.
func (m Metric) Value(o weather.HourlyObservation) float64 {
	switch m {
	case MetricHumidity:
		return o.HumidityPct
	case MetricUV:
		return o.UVIndex
	default:
		return o.TemperatureC
	}
}

// CitySeries pairs a display name with its forecast.
type CitySeries struct {
	Name   string
	Series weather.ForecastSeries
}

// ComparisonPoint is one smoothed hourly value on the home-zone axis.
type ComparisonPoint struct {
	City    string  `json:"city"`
	Day     string  `json:"day"`
	Hour    float64 `json:"hour"`
	Value   float64 `json:"value"`
	Average float64 `json:"average"`
}

const smoothingWindow = 4

// HomeHour returns t as fractional hours in the home zone.
func HomeHour(t time.Time, home *time.Location) float64 {
	return TimeOfDayOf(t.In(home)).Hours()
}

// UnifiedFrame puts every city's metric on the home-zone time axis.
// Values are smoothed with a centred rolling mean over four hours, and each
// point also carries the mean of the smoothed values for its city and hour
// across all forecast days.
func UnifiedFrame(home *time.Location, metric Metric, cities ...CitySeries) []ComparisonPoint {
	type key struct {
		city   string
		minute int
	}
	type acc struct {
		sum float64
		n   int
	}

	var (
		points []ComparisonPoint
		keys   []key
	)
	totals := make(map[key]*acc)

	for _, c := range cities {
		obs := c.Series.Observations
		raw := make([]float64, len(obs))
		for i, o := range obs {
			raw[i] = metric.Value(o)
		}
		smoothed := rollingCentered(raw, smoothingWindow)

		for i, o := range obs {
			local := o.Time.In(home)
			p := ComparisonPoint{
				City:  c.Name,
				Day:   local.Format("Mon 02"),
				Hour:  HomeHour(o.Time, home),
				Value: smoothed[i],
			}
			k := key{city: c.Name, minute: TimeOfDayOf(local).Minutes()}
			points = append(points, p)
			keys = append(keys, k)

			a, ok := totals[k]
			if !ok {
				a = &acc{}
				totals[k] = a
			}
			a.sum += p.Value
			a.n++
		}
	}

	for i := range points {
		a := totals[keys[i]]
		points[i].Average = a.sum / float64(a.n)
	}
	return points
}

// rollingCentered is a centred moving mean that shrinks at the edges. For an
// even window the extra element falls before the centre.
func rollingCentered(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	before := window / 2
	after := window - before - 1
	for i := range values {
		lo := max(0, i-before)
		hi := min(len(values)-1, i+after)
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// SunMarker places a city's first sunrise and sunset on the home-zone axis.
type SunMarker struct {
	City    string  `json:"city"`
	Sunrise float64 `json:"sunrise"`
	Sunset  float64 `json:"sunset"`
}

// SunMarkers returns one marker per city with data.
func SunMarkers(home *time.Location, cities ...CitySeries) []SunMarker {
	var out []SunMarker
	for _, c := range cities {
		if c.Series.Len() == 0 {
			continue
		}
		first := c.Series.Observations[0]
		out = append(out, SunMarker{
			City:    c.Name,
			Sunrise: math.Round(HomeHour(first.Sunrise, home)*100) / 100,
			Sunset:  math.Round(HomeHour(first.Sunset, home)*100) / 100,
		})
	}
	return out
}

// WheelAxis is one spoke of the comfort wheel with its ideal range.
type WheelAxis struct {
	Metric   Metric  `json:"metric"`
	IdealMin float64 `json:"idealMin"`
	IdealMax float64 `json:"idealMax"`
}

// WheelAxes lists the comfort wheel spokes in display order.
var WheelAxes = []WheelAxis{
	{Metric: MetricTemperature, IdealMin: 20, IdealMax: 24},
	{Metric: MetricHumidity, IdealMin: 40, IdealMax: 60},
	{Metric: MetricUV, IdealMin: 0, IdealMax: 2},
}

// WheelSeries holds a city's current values, ordered like WheelAxes.
type WheelSeries struct {
	City   string    `json:"city"`
	Values []float64 `json:"values"`
}

// ComfortWheel compares each city's first forecast hour with the ideal ranges.
func ComfortWheel(cities ...CitySeries) []WheelSeries {
	var out []WheelSeries
	for _, c := range cities {
		if c.Series.Len() == 0 {
			continue
		}
		now := c.Series.Observations[0]
		values := make([]float64, len(WheelAxes))
		for i, axis := range WheelAxes {
			values[i] = axis.Metric.Value(now)
		}
		out = append(out, WheelSeries{City: c.Name, Values: values})
	}
	return out
}
