package checklist

import (
	"strings"
	"testing"
	"time"

	"github.com/i474232898/moveguider/internal/profile"
)

var generatedAt = time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)

func TestGenerateLiveForecast(t *testing.T) {
	out := Generate(Params{
		From:    "Phoenix",
		To:      "London, GB",
		Mode:    ModeLive,
		Profile: profile.Seed(),
		Now:     generatedAt,
	})

	for _, want := range []string{
		"Moving from: Phoenix",
		"Moving to: London",
		"Generated on: 2024-07-15",
		"--- 1. LOGISTICS & ADMINISTRATION ---",
		"[ ] Check 7-Day Forecast: Review the live forecast for London before you travel.",
		"waking at 06:00 and sleeping at 22:30",
		"--- 4. REMOTE WORK SETUP ---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("checklist missing %q", want)
		}
	}
	if strings.Contains(out, "London, GB") {
		t.Error("destination should use the short city name")
	}
	if n := strings.Count(out, "[ ] "); n != 16 {
		t.Errorf("got %d checklist items, want 16", n)
	}
}

func TestGenerateSeasonal(t *testing.T) {
	out := Generate(Params{From: "Phoenix", To: "Oslo", Mode: ModeSeasonal, SimMonth: "January", Now: generatedAt})

	if !strings.Contains(out, "You planned for a move in January") {
		t.Error("seasonal packing item missing")
	}
	if strings.Contains(out, "7-Day Forecast") {
		t.Error("live forecast item should not appear in seasonal mode")
	}
	if !strings.Contains(out, "waking at N/A and sleeping at N/A") {
		t.Error("missing profile times should render as N/A")
	}
}

func TestGenerateSeasonalWithoutMonthFallsBackToLive(t *testing.T) {
	out := Generate(Params{From: "A", To: "B", Mode: ModeSeasonal, Now: generatedAt})
	if !strings.Contains(out, "Check 7-Day Forecast") {
		t.Error("seasonal mode without a month should use the live packing items")
	}
}
