package models

import (
	"fmt"
	"sort"
)

// ScheduleKind discriminates the schedule variants.
type ScheduleKind string

const (
	// ScheduleDaily is due every calendar day.
	ScheduleDaily ScheduleKind = "daily"
	// ScheduleWeekdays is due only on a listed set of weekdays.
	ScheduleWeekdays ScheduleKind = "weekdays"
	// ScheduleTimesPerWeek carries an advisory weekly frequency. The
	// quota is never enforced; the task renders as due every day.
	ScheduleTimesPerWeek ScheduleKind = "times_per_week"
	// ScheduleEveryNDays is due every n days, anchored at the task's
	// creation day.
	ScheduleEveryNDays ScheduleKind = "every_n_days"
)

// IsValid reports whether the kind is one of the known values.
func (k ScheduleKind) IsValid() bool {
	switch k {
	case ScheduleDaily, ScheduleWeekdays, ScheduleTimesPerWeek, ScheduleEveryNDays:
		return true
	default:
		return false
	}
}

// Schedule is a tagged variant describing when a task is due. Only the
// field matching Kind is meaningful; use the constructors to build
// well-formed values.
type Schedule struct {
	Kind ScheduleKind `json:"kind"`
	// Weekdays holds 0=Sunday through 6=Saturday for ScheduleWeekdays.
	// An empty set means the task is never due.
	Weekdays []int `json:"weekdays,omitempty"`
	// TimesPerWeek is the advisory frequency for ScheduleTimesPerWeek.
	TimesPerWeek int `json:"times_per_week,omitempty"`
	// EveryNDays is the cadence for ScheduleEveryNDays.
	EveryNDays int `json:"every_n_days,omitempty"`
}

// Daily returns a schedule due every day.
func Daily() Schedule {
	return Schedule{Kind: ScheduleDaily}
}

// OnWeekdays returns a schedule due only on the given weekdays
// (0=Sunday .. 6=Saturday). Duplicates are collapsed.
func OnWeekdays(days ...int) Schedule {
	seen := make(map[int]bool, len(days))
	var out []int
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return Schedule{Kind: ScheduleWeekdays, Weekdays: out}
}

// TimesPerWeek returns a schedule with an advisory weekly frequency.
func TimesPerWeek(n int) Schedule {
	return Schedule{Kind: ScheduleTimesPerWeek, TimesPerWeek: n}
}

// EveryNDays returns a schedule due every n days from the task's
// creation day.
func EveryNDays(n int) Schedule {
	return Schedule{Kind: ScheduleEveryNDays, EveryNDays: n}
}

// HasWeekday reports whether day (0=Sunday .. 6=Saturday) is in the
// weekday set.
func (s Schedule) HasWeekday(day int) bool {
	for _, d := range s.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the schedule's shape against its kind.
func (s Schedule) Validate() error {
	if !s.Kind.IsValid() {
		return fmt.Errorf("invalid schedule kind: %q", s.Kind)
	}
	if s.Kind == ScheduleWeekdays {
		for _, d := range s.Weekdays {
			if d < 0 || d > 6 {
				return fmt.Errorf("weekday out of range: %d", d)
			}
		}
	}
	return nil
}
