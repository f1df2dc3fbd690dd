package models

import (
	"fmt"
	"strings"

	dErrors "doctorat/pkg/domain-errors"
)

// Prerequisites are the scientific output a candidate must show before a
// jury can be proposed.
type Prerequisites struct {
	Publications  int  `json:"publications_count"`
	Conferences   int  `json:"conferences_count"`
	TrainingHours int  `json:"training_hours"`
	Validated     bool `json:"validated"`
}

// Thresholds are the minimums checked by ValidatePrerequisites.
type Thresholds struct {
	MinPublications  int
	MinConferences   int
	MinTrainingHours int
}

func DefaultThresholds() Thresholds {
	return Thresholds{MinPublications: 2, MinConferences: 2, MinTrainingHours: 200}
}

// Unmet lists every threshold p falls short of.
func (p Prerequisites) Unmet(th Thresholds) []string {
	var unmet []string
	if p.Publications < th.MinPublications {
		unmet = append(unmet, fmt.Sprintf("publications %d/%d", p.Publications, th.MinPublications))
	}
	if p.Conferences < th.MinConferences {
		unmet = append(unmet, fmt.Sprintf("conferences %d/%d", p.Conferences, th.MinConferences))
	}
	if p.TrainingHours < th.MinTrainingHours {
		unmet = append(unmet, fmt.Sprintf("training hours %d/%d", p.TrainingHours, th.MinTrainingHours))
	}
	return unmet
}

func (p Prerequisites) check() error {
	if p.Publications < 0 || p.Conferences < 0 || p.TrainingHours < 0 {
		return dErrors.New(dErrors.CodeValidation, "prerequisite counts cannot be negative")
	}
	return nil
}

func unmetError(unmet []string) error {
	return dErrors.New(dErrors.CodeValidation, "prerequisites not met: "+strings.Join(unmet, ", "))
}
