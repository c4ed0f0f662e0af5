package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/i474232898/moveguider/internal/weather"
)

// DefaultTopN is the number of ranked windows TopN returns when n <= 0.
const DefaultTopN = 5

const (
	candidateStep  = 30 * time.Minute
	maxDailyDays   = 3
	idealMaxTempC  = 22.0
	idealMinTempC  = 15.0
	humidityCutoff = 60.0
	daylightBonus  = 10.0
	darknessCost   = 5.0
)

// BestPerDay returns the lowest-scoring feasible window for each of the first
// three calendar days of the series. Days with no feasible window are left out.
func BestPerDay(series weather.ForecastSeries, busy []BusyInterval, duration time.Duration) []WorkoutCandidate {
	all := Candidates(series, busy, duration)

	best := make(map[int]WorkoutCandidate)
	var order []int
	for _, c := range all {
		idx := c.DayIndex
		if idx >= maxDailyDays {
			continue
		}
		cur, ok := best[idx]
		if !ok {
			order = append(order, idx)
			best[idx] = c
			continue
		}
		// Strict comparison keeps the earliest start on ties.
		if c.Score < cur.Score {
			best[idx] = c
		}
	}

	sort.Ints(order)
	out := make([]WorkoutCandidate, 0, len(order))
	for _, idx := range order {
		out = append(out, best[idx])
	}
	return out
}

// TopN returns the n lowest-scoring feasible windows across the whole series,
// ties broken by earliest start. n <= 0 means DefaultTopN.
func TopN(series weather.ForecastSeries, busy []BusyInterval, duration time.Duration, n int) []WorkoutCandidate {
	if n <= 0 {
		n = DefaultTopN
	}
	all := Candidates(series, busy, duration)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score < all[j].Score
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Candidates enumerates every conflict-free window at a 30 minute step over the
// series span, scored and ordered by start. Windows containing no observation
// are skipped.
func Candidates(series weather.ForecastSeries, busy []BusyInterval, duration time.Duration) []WorkoutCandidate {
	if duration <= 0 || duration > 24*time.Hour || series.Len() == 0 {
		return nil
	}

	loc := series.Loc()
	obs := series.Observations
	first := obs[0].Time.In(loc)
	limit := obs[len(obs)-1].Time.Add(time.Hour)
	durMin := int(duration / time.Minute)

	var out []WorkoutCandidate
	for t := first; !t.Add(duration).After(limit); t = t.Add(candidateStep) {
		if overlapsBusy(TimeOfDayOf(t).Minutes(), durMin, busy) {
			continue
		}

		window := windowObservations(obs, t, t.Add(duration))
		if len(window) == 0 {
			continue
		}

		c := scoreWindow(t, duration, window)
		c.DayIndex = daysBetween(first, t)
		c.Day = dayLabel(c.DayIndex, t)
		c.Detail = fmt.Sprintf("%s %s-%s: %.1f°C, %.0f%% humidity, UV %.1f (score %.1f)",
			c.Day, t.Format("15:04"), t.Add(duration).Format("15:04"),
			c.MeanTempC, c.MeanHumidity, c.MaxUV, c.Score)
		out = append(out, c)
	}
	return out
}

// Score applies the comfort formula; lower is better.
func Score(meanTemp, meanHumidity, maxUV float64, inDaylight bool) float64 {
	score := math.Max(0, meanTemp-idealMaxTempC)*2 +
		math.Min(0, meanTemp-idealMinTempC)*(-1) +
		math.Max(0, meanHumidity-humidityCutoff)*0.5 +
		maxUV*5
	if inDaylight {
		return score - daylightBonus
	}
	return score + darknessCost
}

func scoreWindow(start time.Time, duration time.Duration, window []weather.HourlyObservation) WorkoutCandidate {
	var sumTemp, sumHumidity, maxUV float64
	for i, o := range window {
		sumTemp += o.TemperatureC
		sumHumidity += o.HumidityPct
		if i == 0 || o.UVIndex > maxUV {
			maxUV = o.UVIndex
		}
	}
	n := float64(len(window))
	meanTemp := sumTemp / n
	meanHumidity := sumHumidity / n

	end := start.Add(duration)
	first := window[0]
	inDaylight := !start.Before(first.Sunrise) && !end.After(first.Sunset)

	return WorkoutCandidate{
		Start:        start,
		Duration:     duration,
		MeanTempC:    meanTemp,
		MeanHumidity: meanHumidity,
		MaxUV:        maxUV,
		Score:        Score(meanTemp, meanHumidity, maxUV, inDaylight),
	}
}

func windowObservations(obs []weather.HourlyObservation, from, to time.Time) []weather.HourlyObservation {
	i := sort.Search(len(obs), func(i int) bool { return !obs[i].Time.Before(from) })
	j := i
	for j < len(obs) && obs[j].Time.Before(to) {
		j++
	}
	return obs[i:j]
}

// overlapsBusy reports whether [start, start+dur) in minutes of day intersects
// any busy interval. Windows running past midnight are also checked against
// the next day's copy of each interval.
func overlapsBusy(start, dur int, busy []BusyInterval) bool {
	end := start + dur
	for _, b := range busy {
		for _, seg := range b.segments() {
			for _, shift := range [2]int{0, minutesPerDay} {
				if start < seg[1]+shift && end > seg[0]+shift {
					return true
				}
			}
		}
	}
	return false
}

// segments splits the interval into non-wrapping [start, end) minute ranges.
func (b BusyInterval) segments() [][2]int {
	s, e := b.Start.Minutes(), b.End.Minutes()
	switch {
	case e > s:
		return [][2]int{{s, e}}
	case e < s:
		return [][2]int{{s, minutesPerDay}, {0, e}}
	default:
		return nil
	}
}

// Overlaps reports whether the candidate window intersects the busy interval
// by time of day in the candidate's zone.
func (c WorkoutCandidate) Overlaps(b BusyInterval) bool {
	return overlapsBusy(TimeOfDayOf(c.Start).Minutes(), int(c.Duration/time.Minute), []BusyInterval{b})
}

// daysBetween counts calendar days from a's date to b's date, both read in a's zone.
func daysBetween(a, b time.Time) int {
	y, m, d := a.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = b.In(a.Location()).Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func dayLabel(idx int, t time.Time) string {
	switch idx {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return t.Weekday().String()
	}
}
