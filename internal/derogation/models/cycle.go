package models

import "time"

// AcademicCycle fixes the calendar day on which every academic year ends.
type AcademicCycle struct {
	EndMonth time.Month
	EndDay   int
}

// DefaultCycle ends on 31 August.
func DefaultCycle() AcademicCycle {
	return AcademicCycle{EndMonth: time.August, EndDay: 31}
}

// EndOnOrAfter returns the first cycle end on or after d's calendar date.
func (c AcademicCycle) EndOnOrAfter(d time.Time) time.Time {
	day := dateOf(d)
	end := time.Date(day.Year(), c.EndMonth, c.EndDay, 0, 0, 0, 0, time.UTC)
	if end.Before(day) {
		end = time.Date(day.Year()+1, c.EndMonth, c.EndDay, 0, 0, 0, 0, time.UTC)
	}
	return end
}

// ExpirationFor is the end of the cycle following the one the decision falls in.
func (c AcademicCycle) ExpirationFor(decision time.Time) time.Time {
	return c.EndOnOrAfter(dateOf(decision).AddDate(1, 0, 0))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
