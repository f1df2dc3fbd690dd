package models

import (
	"strings"

	dErrors "doctorat/pkg/domain-errors"
)

type Mention string

const (
	MentionHonorable                  Mention = "HONORABLE"
	MentionTresHonorable              Mention = "TRES_HONORABLE"
	MentionTresHonorableFelicitations Mention = "TRES_HONORABLE_FELICITATIONS"
)

const (
	MinGrade          = 0.0
	MaxGrade          = 20.0
	FelicitationGrade = 18.0
)

func ParseMention(s string) (Mention, error) {
	switch m := Mention(strings.ToUpper(strings.TrimSpace(s))); m {
	case MentionHonorable, MentionTresHonorable, MentionTresHonorableFelicitations:
		return m, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown mention %q", s)
}

// Result is the jury's final decision.
type Result struct {
	Grade       float64
	Mention     Mention
	Distinction bool
}

// normalize validates r and applies the felicitations rule.
func (r Result) normalize() (Result, error) {
	if r.Grade < MinGrade || r.Grade > MaxGrade {
		return r, dErrors.Newf(dErrors.CodeValidation, "grade must be between %.0f and %.0f", MinGrade, MaxGrade)
	}
	if _, err := ParseMention(string(r.Mention)); err != nil {
		return r, err
	}
	if r.Mention == MentionTresHonorableFelicitations {
		if r.Grade < FelicitationGrade {
			return r, dErrors.Newf(dErrors.CodeValidation, "felicitations require a grade of at least %.0f", FelicitationGrade)
		}
		r.Distinction = true
	}
	return r, nil
}
