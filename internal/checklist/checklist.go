// Package checklist renders a personalised plain-text moving plan.
package checklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/moveguider/internal/common"
	"github.com/i474232898/moveguider/internal/profile"
)

// Mode selects how the packing section refers to the destination weather.
type Mode string

const (
	ModeLive     Mode = "Live Forecast"
	ModeSeasonal Mode = "Seasonal Simulation"
)

// Params describes one move.
type Params struct {
	From     string `validate:"required"`
	To       string `validate:"required"`
	Mode     Mode   `validate:"omitempty,oneof='Live Forecast' 'Seasonal Simulation'"`
	SimMonth string
	Profile  profile.Profile `validate:"-"`
	Now      time.Time       `validate:"-"`
}

const rule = "==============================================="

// Generate builds the checklist text.
func Generate(p Params) string {
	to := common.ShortName(p.To)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("    MoveGuider - Your Personalized Move Plan\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\nMoving from: %s\n", p.From)
	fmt.Fprintf(&b, "Moving to: %s\n", to)
	fmt.Fprintf(&b, "Generated on: %s\n", p.Now.Format("2006-01-02"))

	section(&b, "1. Logistics & Administration",
		"Research: Cost of living, housing, and neighborhoods.",
		"Legal: Check visa/work permit requirements if applicable.",
		"Address Change: Update with USPS/mail service, banks, subscriptions.",
		"Utilities: Arrange disconnection at old address and setup at new address (Internet, electricity, water, gas).",
		"Employer: Notify your team of the move and any changes to your working hours.",
	)

	var packing []string
	if p.Mode == ModeSeasonal && p.SimMonth != "" {
		packing = append(packing,
			fmt.Sprintf("Review Seasonal Data: You planned for a move in %s. Review the charts for typical conditions in %s.", p.SimMonth, to),
			fmt.Sprintf("Pack Accordingly: Pack clothing suitable for %s weather in %s.", p.SimMonth, to),
		)
	} else {
		packing = append(packing,
			fmt.Sprintf("Check 7-Day Forecast: Review the live forecast for %s before you travel.", to),
			"Pack Accordingly: Pack for the immediate weather conditions.",
		)
	}
	packing = append(packing, "Local Climate Prep: Be ready for local norms (e.g., high humidity gear, rain protection, sunblock).")
	section(&b, "2. Packing & Environmental Prep", packing...)

	wake, sleep := orNA(p.Profile.Settings.WakeTime), orNA(p.Profile.Settings.SleepTime)
	section(&b, "3. Routine & Wellness Transition",
		fmt.Sprintf("Adjust Body Clock: Start adjusting to your new local time. Your plan is based on waking at %s and sleeping at %s.", wake, sleep),
		"Update Calendars: Shift all digital calendar events and reminders to the new timezone.",
		"Plan Workouts: Use the 'Best Workout Times' recommendations to schedule your first week of fitness.",
		fmt.Sprintf("Hydration: Note the hydration needs for %s and plan to drink enough water, especially on day one.", to),
		"Healthcare: Research and shortlist new doctors, dentists, and other healthcare providers.",
	)

	section(&b, "4. Remote Work Setup",
		"Day 1 Connectivity: Ensure you have a plan for internet on your first day (e.g., mobile hotspot as a backup).",
		"Test Your Setup: Once internet is live, test your full remote work stack (VPN, video calls, software access).",
		"Find Your Spots: Research local coffee shops or coworking spaces with good Wi-Fi as alternatives.",
	)

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, title string, items ...string) {
	fmt.Fprintf(b, "\n\n--- %s ---\n\n", strings.ToUpper(title))
	for _, item := range items {
		fmt.Fprintf(b, "[ ] %s\n", item)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
