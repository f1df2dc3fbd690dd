// Package duration derives a candidate's academic year and renewal eligibility
// from registration history and held exemptions.
//
// Calculator functions are pure: they take facts and a reference date and
// return a result. Service wraps them with store reads.
package duration

import (
	"fmt"
	"time"
)

// RegistrationFact is the slice of a registration the calculator needs.
type RegistrationFact struct {
	CreatedAt             time.Time
	FirstRegistrationDate *time.Time
}

// ExemptionFact is a currently valid exemption.
type ExemptionFact struct {
	RequestedYear int
}

// Rules holds the duration thresholds.
type Rules struct {
	// NormalYears is the last year reachable without an exemption.
	NormalYears int
	// MaxYears is the hard ceiling; no exemption allows registering beyond it.
	MaxYears int
	// AlertFromYear starts the alert period.
	AlertFromYear int
}

func DefaultRules() Rules {
	return Rules{NormalYears: 3, MaxYears: 6, AlertFromYear: 5}
}

// Eligibility is the renewal verdict for the next academic year.
type Eligibility struct {
	Eligible              bool       `json:"eligible"`
	CurrentYear           int        `json:"current_year"`
	NextYear              int        `json:"next_year"`
	ExemptionRequired     bool       `json:"exemption_required"`
	ExemptionHeld         bool       `json:"exemption_held"`
	RequiredExemptionType string     `json:"required_exemption_type,omitempty"`
	Message               string     `json:"message"`
	YearsRemaining        int        `json:"years_remaining"`
	AlertPeriod           bool       `json:"alert_period"`
	StartDate             *time.Time `json:"start_date,omitempty"`
}

// ExemptionTypeForYear names the prolongation that unlocks year.
func ExemptionTypeForYear(year int) string {
	return fmt.Sprintf("PROLONGATION_%d", year)
}

// StartDate is the earliest recorded first-registration date, falling back to
// the earliest record creation when no record carries one.
func StartDate(history []RegistrationFact) (time.Time, bool) {
	var (
		earliestFirst   time.Time
		earliestCreated time.Time
		haveFirst       bool
	)
	for _, r := range history {
		if r.FirstRegistrationDate != nil && !r.FirstRegistrationDate.IsZero() {
			if !haveFirst || r.FirstRegistrationDate.Before(earliestFirst) {
				earliestFirst = *r.FirstRegistrationDate
				haveFirst = true
			}
		}
		if earliestCreated.IsZero() || (!r.CreatedAt.IsZero() && r.CreatedAt.Before(earliestCreated)) {
			earliestCreated = r.CreatedAt
		}
	}
	if haveFirst {
		return earliestFirst, true
	}
	if earliestCreated.IsZero() {
		return time.Time{}, false
	}
	return earliestCreated, true
}

// FullYearsBetween counts anniversaries of start that fall strictly before
// today, comparing calendar dates. On the anniversary itself the year is
// still running.
func FullYearsBetween(start, today time.Time) int {
	s, t := civilDate(start), civilDate(today)
	if !s.Before(t) {
		return 0
	}
	years := t.Year() - s.Year()
	if !s.AddDate(years, 0, 0).Before(t) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// CurrentYear is 1-based; 0 means no registration on record.
func CurrentYear(history []RegistrationFact, today time.Time) int {
	start, ok := StartDate(history)
	if !ok {
		return 0
	}
	return FullYearsBetween(start, today) + 1
}

// Evaluate applies the renewal decision table for currentYear+1.
func Evaluate(rules Rules, history []RegistrationFact, exemptions []ExemptionFact, today time.Time) Eligibility {
	current := CurrentYear(history, today)
	next := current + 1

	e := Eligibility{
		CurrentYear:    current,
		NextYear:       next,
		YearsRemaining: max(0, rules.MaxYears-current),
		AlertPeriod:    current >= rules.AlertFromYear,
	}
	if start, ok := StartDate(history); ok {
		e.StartDate = &start
	}

	switch {
	case current == 0:
		e.Message = "no registration on record; renewal is not possible"
	case next > rules.MaxYears:
		e.Message = fmt.Sprintf("maximum doctoral duration of %d years reached; renewal is not possible", rules.MaxYears)
	case next <= rules.NormalYears:
		e.Eligible = true
		e.Message = fmt.Sprintf("renewal for year %d is within the normal duration", next)
	default:
		e.ExemptionRequired = true
		e.RequiredExemptionType = ExemptionTypeForYear(next)
		for _, ex := range exemptions {
			if ex.RequestedYear >= next {
				e.ExemptionHeld = true
				break
			}
		}
		e.Eligible = e.ExemptionHeld
		if e.ExemptionHeld {
			e.Message = fmt.Sprintf("renewal for year %d is covered by a valid exemption", next)
		} else {
			e.Message = fmt.Sprintf("renewal for year %d requires an approved %s exemption", next, e.RequiredExemptionType)
		}
	}
	return e
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
