package profile

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/moveguider/internal/planner"
)

var (
	// ErrNotFound is returned when no profile exists under a name.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalid is returned when a profile fails validation on save.
	ErrInvalid = errors.New("invalid profile")
)

const DefaultName = "Default"

var validate = validator.New()

// Settings are the personal parameters behind hydration and energy modelling.
type Settings struct {
	WeightKg   float64 `json:"weight_kg" yaml:"weight_kg" validate:"gt=0,lte=500"`
	WakeTime   string  `json:"wake_time" yaml:"wake_time" validate:"required,datetime=15:04"`
	SleepTime  string  `json:"sleep_time" yaml:"sleep_time" validate:"required,datetime=15:04"`
	Chronotype string  `json:"chronotype" yaml:"chronotype" validate:"oneof='Morning Lark' 'Night Owl' Default"`
}

// Profile is a named user's settings and daily routine in the home zone.
type Profile struct {
	Settings Settings              `json:"user_settings" yaml:"user_settings"`
	Routine  []planner.RoutineTask `json:"routine" yaml:"routine"`
}

// DefaultSettings are used for a missing or unusable settings block.
func DefaultSettings() Settings {
	return Settings{
		WeightKg:   75,
		WakeTime:   "06:00",
		SleepTime:  "22:30",
		Chronotype: string(planner.ChronotypeDefault),
	}
}

// Seed is the profile written when the store is empty.
func Seed() Profile {
	return Profile{
		Settings: DefaultSettings(),
		Routine: []planner.RoutineTask{
			{Label: "Work", Start: "09:00", End: "17:00"},
			{Label: "Breakfast", Start: "08:00", End: "09:00"},
			{Label: "Lunch", Start: "12:00", End: "13:00"},
			{Label: "Dinner", Start: "19:00", End: "20:00"},
		},
	}
}

// Validate checks the settings block. Routine entries are not validated here;
// the projector skips bad tasks individually.
func (p Profile) Validate() error {
	if err := validate.Struct(p.Settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i, task := range p.Routine {
		if task.Label == "" {
			return fmt.Errorf("%w: routine entry %d has no task name", ErrInvalid, i)
		}
	}
	return nil
}

// WithDefaults fills zero fields and replaces an invalid settings block with
// the defaults.
func (p Profile) WithDefaults(name string) Profile {
	p = p.filled()
	if err := validate.Struct(p.Settings); err != nil {
		log.Printf("INFO: profile %q has unusable settings, using defaults: %v", name, err)
		p.Settings = DefaultSettings()
	}
	return p
}

func (p Profile) filled() Profile {
	def := DefaultSettings()
	s := &p.Settings
	if s.WeightKg == 0 {
		s.WeightKg = def.WeightKg
	}
	if s.WakeTime == "" {
		s.WakeTime = def.WakeTime
	}
	if s.SleepTime == "" {
		s.SleepTime = def.SleepTime
	}
	if s.Chronotype == "" {
		s.Chronotype = def.Chronotype
	}
	if p.Routine == nil {
		p.Routine = []planner.RoutineTask{}
	}
	return p
}

// Wake returns the parsed wake time.
func (s Settings) Wake() planner.TimeOfDay {
	return parseOr(s.WakeTime, DefaultSettings().WakeTime)
}

// Sleep returns the parsed sleep time.
func (s Settings) Sleep() planner.TimeOfDay {
	return parseOr(s.SleepTime, DefaultSettings().SleepTime)
}

// ChronotypeValue returns the chronotype, Default when unrecognised.
func (s Settings) ChronotypeValue() planner.Chronotype {
	ct, _ := planner.ParseChronotype(s.Chronotype)
	return ct
}

func parseOr(v, fallback string) planner.TimeOfDay {
	if tod, err := planner.ParseTimeOfDay(v); err == nil {
		return tod
	}
	return planner.MustTimeOfDay(fallback)
}
