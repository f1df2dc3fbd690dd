package models

import (
	"strings"

	dErrors "doctorat/pkg/domain-errors"
)

// ExemptionType encodes the year an exemption unlocks, or a non-year purpose.
type ExemptionType string

const (
	TypeProlongation4 ExemptionType = "PROLONGATION_4"
	TypeProlongation5 ExemptionType = "PROLONGATION_5"
	TypeProlongation6 ExemptionType = "PROLONGATION_6"
	TypeSuspension    ExemptionType = "SUSPENSION"
	TypeOther         ExemptionType = "OTHER"
)

func ParseExemptionType(s string) (ExemptionType, error) {
	switch t := ExemptionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeProlongation4, TypeProlongation5, TypeProlongation6, TypeSuspension, TypeOther:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown exemption type %q", s)
}

// TargetYear is the academic year a prolongation unlocks; 0 for types that do
// not name a year.
func (t ExemptionType) TargetYear() int {
	switch t {
	case TypeProlongation4:
		return 4
	case TypeProlongation5:
		return 5
	case TypeProlongation6:
		return 6
	}
	return 0
}

func (t ExemptionType) String() string { return string(t) }
