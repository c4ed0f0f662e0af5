package planner

import (
	"math"
	"testing"
	"time"
)

func TestHourlyIntake(t *testing.T) {
	tests := []struct {
		weight, temp, humidity float64
		want                   float64
	}{
		{75, 25, 50, 164.0625},
		{75, 35, 50, 164.0625 + 300},
		{75, 35, 70, 164.0625 + 300 + 50},
		{60, 10, 61, 131.25 + 50},
		{75, 27.5, 60, 164.0625 + 75},
	}
	for _, tt := range tests {
		got := HourlyIntake(tt.weight, tt.temp, tt.humidity)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HourlyIntake(%v, %v, %v) = %v, want %v", tt.weight, tt.temp, tt.humidity, got, tt.want)
		}
	}
}

func TestHydrationLengthAndCumulative(t *testing.T) {
	for _, hours := range []int{10, 24, 48} {
		series := buildSeries(t, "America/Phoenix", july15, hours, func(i int, _ time.Time) (float64, float64, float64) {
			return 20 + float64(i), 40 + float64(i%5)*10, 0
		}, 6, 18)

		got := Hydration(series, 75)
		want := min(24, hours)
		if len(got) != want {
			t.Fatalf("hours=%d: got %d points, want %d", hours, len(got), want)
		}

		var sum float64
		for i, p := range got {
			sum += p.IntakeML
			if math.Abs(p.CumulativeML-sum) > 1e-9 {
				t.Errorf("hours=%d point %d: cumulative %v, want %v", hours, i, p.CumulativeML, sum)
			}
			if i > 0 && p.CumulativeML < got[i-1].CumulativeML {
				t.Errorf("hours=%d point %d: cumulative decreased", hours, i)
			}
		}
	}
}

func TestHydrationMildDay(t *testing.T) {
	series := buildSeries(t, "UTC", july15, 24, constant(25, 50, 0), 6, 18)
	got := Hydration(series, 75)
	if got[0].IntakeML != 164.0625 {
		t.Errorf("intake = %v, want 164.0625", got[0].IntakeML)
	}
	if math.Abs(got[23].CumulativeML-164.0625*24) > 1e-9 {
		t.Errorf("day total = %v, want %v", got[23].CumulativeML, 164.0625*24)
	}
}
