package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

type JuryRole string

const (
	JuryPresident  JuryRole = "PRESIDENT"
	JuryReporter   JuryRole = "REPORTER"
	JuryExaminer   JuryRole = "EXAMINER"
	JurySupervisor JuryRole = "SUPERVISOR"
)

func ParseJuryRole(s string) (JuryRole, error) {
	switch r := JuryRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case JuryPresident, JuryReporter, JuryExaminer, JurySupervisor:
		return r, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown jury role %q", s)
}

// JuryMember sits on one defense. PersonID links the member to a directory
// profile when known; members from other institutions may have none.
type JuryMember struct {
	ID          id.JuryMemberID `json:"id"`
	PersonID    *uuid.UUID      `json:"person_id,omitempty"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Institution string          `json:"institution,omitempty"`
	Role        JuryRole        `json:"role"`

	ReportSubmitted  bool       `json:"report_submitted"`
	FavorableOpinion *bool      `json:"favorable_opinion,omitempty"`
	ReportComment    string     `json:"report_comment,omitempty"`
	ReportedAt       *time.Time `json:"reported_at,omitempty"`
}

// Composition rules for proposing a jury.
const (
	MinPresidents = 1
	MinReporters  = 2
)

func countRole(jury []JuryMember, role JuryRole) int {
	n := 0
	for _, m := range jury {
		if m.Role == role {
			n++
		}
	}
	return n
}

// CheckComposition reports the missing seats, if any.
func CheckComposition(jury []JuryMember) error {
	var missing []string
	if n := countRole(jury, JuryPresident); n < MinPresidents {
		missing = append(missing, fmt.Sprintf("presidents %d/%d", n, MinPresidents))
	}
	if n := countRole(jury, JuryReporter); n < MinReporters {
		missing = append(missing, fmt.Sprintf("reporters %d/%d", n, MinReporters))
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "jury composition incomplete: "+strings.Join(missing, ", "))
	}
	return nil
}

// CheckReports passes when every reporter has reported favorably.
func CheckReports(jury []JuryMember) error {
	var pending, unfavorable []string
	for _, m := range jury {
		if m.Role != JuryReporter {
			continue
		}
		switch {
		case !m.ReportSubmitted:
			pending = append(pending, m.Name)
		case m.FavorableOpinion == nil || !*m.FavorableOpinion:
			unfavorable = append(unfavorable, m.Name)
		}
	}
	if len(pending) > 0 {
		return dErrors.New(dErrors.CodeValidation, "reports pending from: "+strings.Join(pending, ", "))
	}
	if len(unfavorable) > 0 {
		return dErrors.New(dErrors.CodeValidation, "unfavorable reports from: "+strings.Join(unfavorable, ", "))
	}
	return nil
}

func cloneJury(jury []JuryMember) []JuryMember {
	if jury == nil {
		return nil
	}
	out := make([]JuryMember, len(jury))
	for i, m := range jury {
		m.PersonID = clonePtr(m.PersonID)
		m.FavorableOpinion = clonePtr(m.FavorableOpinion)
		m.ReportedAt = clonePtr(m.ReportedAt)
		out[i] = m
	}
	return out
}
