package planner

import (
	"fmt"
	"time"

	"github.com/i474232898/moveguider/internal/common"
)

// TaskError records a routine task that could not be projected.
type TaskError struct {
	Index int
	Label string
	Err   error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("task %d (%s): %v", e.Index, e.Label, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

// Projection is the routine re-expressed for every target city.
type Projection struct {
	Tasks   []ProjectedTask `json:"tasks"`
	Skipped []TaskError     `json:"-"`
}

// ProjectRoutine projects each home-zone task onto each target zone.
// Output is grouped by task order, then target order. A task with malformed
// times or an end not after its start is skipped for every target and
// reported in Skipped.
func ProjectRoutine(tasks []RoutineTask, home *time.Location, ref RefDate, targets []Target, policy MidnightPolicy) Projection {
	var out Projection

	for i, task := range tasks {
		start, end, err := parseTask(task)
		if err != nil {
			out.Skipped = append(out.Skipped, TaskError{Index: i, Label: task.Label, Err: err})
			continue
		}

		for ti, target := range targets {
			s, e := NormalizeInterval(start, end, home, ref, target.Zone, policy)
			out.Tasks = append(out.Tasks, ProjectedTask{
				Label:    task.Label,
				Start:    s,
				End:      e,
				Resource: common.ShortName(target.City),
				Target:   ti,
			})
		}
	}

	return out
}

func parseTask(task RoutineTask) (TimeOfDay, TimeOfDay, error) {
	start, err := ParseTimeOfDay(task.Start)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	end, err := ParseTimeOfDay(task.End)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	if end.Minutes() <= start.Minutes() {
		return TimeOfDay{}, TimeOfDay{}, fmt.Errorf("%w: %s-%s", ErrEmptyInterval, task.Start, task.End)
	}
	return start, end, nil
}

// BusyFromTasks returns the time-of-day spans of the projected tasks for one
// target index, read in each task's own zone. A negative target selects all tasks.
func BusyFromTasks(tasks []ProjectedTask, target int) []BusyInterval {
	var busy []BusyInterval
	for _, t := range tasks {
		if target >= 0 && t.Target != target {
			continue
		}
		busy = append(busy, BusyInterval{
			Start: TimeOfDayOf(t.Start),
			End:   TimeOfDayOf(t.End),
		})
	}
	return busy
}
