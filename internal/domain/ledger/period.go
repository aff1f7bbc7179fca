package ledger

import (
	"errors"
	"time"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Period names a reporting window.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

var ErrInvalidRange = errors.New("range end must be after start")

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns the Monday midnight on or before t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// StartOfYear returns January 1st of t's year.
func StartOfYear(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
}

// PeriodWindow resolves a named period containing now.
func PeriodWindow(p Period, now time.Time, loc *time.Location) (Window, error) {
	switch p {
	case PeriodToday, "":
		start := StartOfDay(now, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}, nil
	case PeriodWeek:
		start := StartOfWeek(now, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case PeriodMonth:
		start := StartOfMonth(now, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case PeriodYear:
		start := StartOfYear(now, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}
	return Window{}, errors.New("unknown period " + string(p))
}

// CustomWindow covers whole days from start through end inclusive.
func CustomWindow(start, end time.Time, loc *time.Location) (Window, error) {
	s := StartOfDay(start, loc)
	e := StartOfDay(end, loc).AddDate(0, 0, 1)
	if !e.After(s) {
		return Window{}, ErrInvalidRange
	}
	return Window{Start: s, End: e}, nil
}

// Bucket is one labelled slot of a revenue series.
type Bucket struct {
	Label string `json:"label"`
	Window
}

// DailyBuckets returns the last n days ending today, oldest first.
func DailyBuckets(now time.Time, loc *time.Location, n int) []Bucket {
	today := StartOfDay(now, loc)
	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		out = append(out, Bucket{
			Label:  start.Format("Mon"),
			Window: Window{Start: start, End: start.AddDate(0, 0, 1)},
		})
	}
	return out
}

// WeeklyBuckets returns the last n Monday-start weeks ending with the current week.
func WeeklyBuckets(now time.Time, loc *time.Location, n int) []Bucket {
	week := StartOfWeek(now, loc)
	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := week.AddDate(0, 0, -7*i)
		out = append(out, Bucket{
			Label:  start.Format("Jan 2"),
			Window: Window{Start: start, End: start.AddDate(0, 0, 7)},
		})
	}
	return out
}

// MonthlyBuckets returns the last n calendar months ending with the current month.
func MonthlyBuckets(now time.Time, loc *time.Location, n int) []Bucket {
	month := StartOfMonth(now, loc)
	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := month.AddDate(0, -i, 0)
		out = append(out, Bucket{
			Label:  start.Format("Jan"),
			Window: Window{Start: start, End: start.AddDate(0, 1, 0)},
		})
	}
	return out
}
