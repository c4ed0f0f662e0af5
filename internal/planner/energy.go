package planner

import (
	"fmt"
	"math"
)

// Chronotype shifts the energy peak and the afternoon dip.
type Chronotype string

const (
	ChronotypeDefault Chronotype = "Default"
	ChronotypeLark    Chronotype = "Morning Lark"
	ChronotypeOwl     Chronotype = "Night Owl"
)

// ParseChronotype accepts the display names; empty means Default.
func ParseChronotype(s string) (Chronotype, error) {
	switch Chronotype(s) {
	case "", ChronotypeDefault:
		return ChronotypeDefault, nil
	case ChronotypeLark, ChronotypeOwl:
		return Chronotype(s), nil
	default:
		return ChronotypeDefault, fmt.Errorf("unknown chronotype %q", s)
	}
}

func (c Chronotype) offsets() (peak, dip float64) {
	switch c {
	case ChronotypeLark:
		return -1.5, -1.0
	case ChronotypeOwl:
		return 2.0, 1.5
	default:
		return 0, 0
	}
}

// EnergyPoint is the modelled performance (percent) at a fractional hour.
type EnergyPoint struct {
	Hour        float64 `json:"hour"`
	Performance float64 `json:"performance"`
}

const (
	energySamples  = 24 * 4
	energyFloor    = 5.0
	energyCeiling  = 100.0
	afternoonDipAt = 14.0
	ultradianHours = 1.5
)

// EnergyCurve models performance over the day from wake/sleep times: a
// circadian cosine peaking a quarter into the waking day, a Gaussian
// afternoon dip and a 90 minute ultradian ripple, clipped to [5, 100].
// Samples are evenly spaced over [0, 24] inclusive.
func EnergyCurve(wake, sleep TimeOfDay, chronotype Chronotype) []EnergyPoint {
	wakeHour := wake.Hours()
	sleepHour := sleep.Hours()
	if sleepHour < wakeHour {
		sleepHour += 24
	}
	awake := sleepHour - wakeHour

	peakOffset, dipOffset := chronotype.offsets()
	peakHour := wakeHour + awake/4 + peakOffset
	dipHour := afternoonDipAt + dipOffset

	out := make([]EnergyPoint, energySamples)
	for i := range out {
		hour := 24 * float64(i) / float64(energySamples-1)

		var perf float64
		if awake > 0 && hour >= wakeHour && hour < sleepHour {
			circadian := 0.8 * (math.Cos((hour-peakHour)/(awake/2)*math.Pi) + 0.1)
			dip := -0.2 * math.Exp(-math.Pow(hour-dipHour, 2)/4)
			ultradian := 0.1 * math.Sin((hour-wakeHour)/ultradianHours*2*math.Pi)
			perf = (circadian + dip + ultradian) * 100
		}

		out[i] = EnergyPoint{
			Hour:        round1(hour),
			Performance: round1(math.Min(energyCeiling, math.Max(energyFloor, perf))),
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
