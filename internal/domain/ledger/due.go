package ledger

import "time"

// DueSoonDays is the look-ahead window for loans coming due.
const DueSoonDays = 7

// DueState classifies a due date relative to today.
type DueState struct {
	Overdue     bool `json:"overdue"`
	DueSoon     bool `json:"due_soon"`
	DaysOverdue int  `json:"days_overdue,omitempty"`
	DaysLeft    int  `json:"days_left"`
}

// ClassifyDue compares the due calendar date with today's date, both taken in
// loc. A loan due today is due soon, not overdue.
func ClassifyDue(due, now time.Time, loc *time.Location) DueState {
	days := DaysBetween(StartOfDay(now, loc), StartOfDay(due, loc))
	switch {
	case days < 0:
		return DueState{Overdue: true, DaysOverdue: -days, DaysLeft: days}
	case days <= DueSoonDays:
		return DueState{DueSoon: true, DaysLeft: days}
	default:
		return DueState{DaysLeft: days}
	}
}

// DaysBetween counts whole calendar days from a to b; both must be day starts
// in the same location.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
