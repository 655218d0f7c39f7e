// Package dates provides calendar arithmetic over local calendar days
// encoded as YYYY-MM-DD strings. All parsing reconstructs a local
// midnight, never a UTC instant, so day boundaries follow the host's
// local calendar. Weeks start on Sunday.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string as a local calendar day.
func Parse(day string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar day %q: %w", day, err)
	}
	return t, nil
}

// MustParse parses a YYYY-MM-DD string and panics on malformed input.
// A malformed day string is a programmer error, not external input.
func MustParse(day string) time.Time {
	t, err := Parse(day)
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders a time as its local calendar day.
func Format(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// Today returns the local calendar day containing now.
func Today(now time.Time) string {
	return Format(now)
}

// DayOfWeek returns the weekday of a day, 0 = Sunday through 6 = Saturday.
func DayOfWeek(day string) int {
	return int(MustParse(day).Weekday())
}

// DaysBetween returns the absolute number of whole calendar days between
// two days. The result is symmetric in its arguments.
func DaysBetween(a, b string) int {
	ta, tb := MustParse(a), MustParse(b)
	// Dividing the wall-clock difference by 24h is wrong across DST
	// transitions, so count by date components instead.
	days := daysSinceEpoch(tb) - daysSinceEpoch(ta)
	if days < 0 {
		days = -days
	}
	return days
}

func daysSinceEpoch(t time.Time) int {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(u.Unix() / 86400)
}

// AddDays returns the day n calendar days after day (n may be negative).
func AddDays(day string, n int) string {
	return Format(MustParse(day).AddDate(0, 0, n))
}

// NextDay returns the calendar day immediately after day.
func NextDay(day string) string {
	return AddDays(day, 1)
}

// WeekStart returns the Sunday on or before day.
func WeekStart(day string) string {
	t := MustParse(day)
	return Format(t.AddDate(0, 0, -int(t.Weekday())))
}

// WeekEnd returns the Saturday of the week containing day.
func WeekEnd(day string) string {
	t := MustParse(day)
	return Format(t.AddDate(0, 0, 6-int(t.Weekday())))
}

// LastNDays returns the n calendar days ending at from, inclusive,
// in ascending chronological order.
func LastNDays(n int, from string) []string {
	if n <= 0 {
		return nil
	}
	days := make([]string, n)
	t := MustParse(from)
	for i := n - 1; i >= 0; i-- {
		days[i] = Format(t)
		t = t.AddDate(0, 0, -1)
	}
	return days
}

// LastNWeekStarts returns the week-start days of the n weeks ending at the
// week containing from, in ascending chronological order.
func LastNWeekStarts(n int, from string) []string {
	if n <= 0 {
		return nil
	}
	starts := make([]string, n)
	t := MustParse(WeekStart(from))
	for i := n - 1; i >= 0; i-- {
		starts[i] = Format(t)
		t = t.AddDate(0, 0, -7)
	}
	return starts
}
