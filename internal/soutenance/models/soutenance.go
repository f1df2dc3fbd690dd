package models

import (
	"slices"
	"time"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

const (
	maxTitleLength   = 500
	maxRefLength     = 512
	maxCommentLength = 4000
)

// Soutenance is a thesis defense moving from submission to a final grade.
//
// Invariants:
//   - Status only moves along the edges in Transition.
//   - Leaving SUBMITTED requires Prerequisites.Validated.
//   - JURY_PROPOSED requires a complete jury; AUTHORIZED requires every
//     reporter to have reported favorably.
//   - COMPLETED and REJECTED records are never modified.
type Soutenance struct {
	ID           id.SoutenanceID
	DoctorantID  id.DoctorantID
	SupervisorID id.SupervisorID
	Status       Status
	ThesisTitle  string

	ManuscriptRef     string
	AntiPlagiarismRef string
	AuthorizationRef  string

	Prerequisites Prerequisites
	Jury          []JuryMember

	SubmittedAt          *time.Time
	AuthorizedAt         *time.Time
	AuthorizationComment string

	ProposedDate   *time.Time
	ProposedPlace  string
	ScheduledDate  *time.Time
	ScheduledPlace string

	FinalGrade  *float64
	Mention     Mention
	Distinction bool
	CompletedAt *time.Time

	RejectionMotif string
	RejectedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// NewDraft builds a DRAFT defense.
func NewDraft(soutenanceID id.SoutenanceID, doctorantID id.DoctorantID, supervisorID id.SupervisorID, title string, now time.Time) (*Soutenance, error) {
	title = text.Normalize(title)
	if doctorantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "doctorant is required")
	}
	if supervisorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "supervisor is required")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "thesis title is required")
	}
	return &Soutenance{
		ID:           soutenanceID,
		DoctorantID:  doctorantID,
		SupervisorID: supervisorID,
		Status:       StatusDraft,
		ThesisTitle:  text.Truncate(title, maxTitleLength),
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}, nil
}

// move checks that action is legal from the current state and, on success,
// applies the new state and timestamp.
func (s *Soutenance) move(action Action, at time.Time, mutate func() error) error {
	next, err := Transition(s.Status, action)
	if err != nil {
		return err
	}
	if mutate != nil {
		if err := mutate(); err != nil {
			return err
		}
	}
	s.Status = next
	s.UpdatedAt = at
	return nil
}

// UpdateDraft changes the title of a DRAFT.
func (s *Soutenance) UpdateDraft(title string, at time.Time) error {
	return s.move(ActionUpdateDraft, at, func() error {
		title = text.Normalize(title)
		if title == "" {
			return dErrors.New(dErrors.CodeValidation, "thesis title is required")
		}
		s.ThesisTitle = text.Truncate(title, maxTitleLength)
		return nil
	})
}

// Submission carries the documents required to submit.
type Submission struct {
	Title             string
	ManuscriptRef     string
	AntiPlagiarismRef string
	AuthorizationRef  string
}

func (s *Soutenance) Submit(sub Submission, at time.Time) error {
	return s.move(ActionSubmit, at, func() error {
		manuscript := text.Normalize(sub.ManuscriptRef)
		plagiarism := text.Normalize(sub.AntiPlagiarismRef)
		if manuscript == "" {
			return dErrors.New(dErrors.CodeValidation, "manuscript reference is required")
		}
		if plagiarism == "" {
			return dErrors.New(dErrors.CodeValidation, "anti-plagiarism report reference is required")
		}
		if title := text.Normalize(sub.Title); title != "" {
			s.ThesisTitle = text.Truncate(title, maxTitleLength)
		}
		s.ManuscriptRef = text.Truncate(manuscript, maxRefLength)
		s.AntiPlagiarismRef = text.Truncate(plagiarism, maxRefLength)
		s.AuthorizationRef = text.Truncate(text.Normalize(sub.AuthorizationRef), maxRefLength)
		s.SubmittedAt = &at
		return nil
	})
}

// UpdatePrerequisites replaces the declared counts and clears validation.
func (s *Soutenance) UpdatePrerequisites(p Prerequisites, at time.Time) error {
	return s.move(ActionUpdatePrerequisites, at, func() error {
		if err := p.check(); err != nil {
			return err
		}
		p.Validated = false
		s.Prerequisites = p
		return nil
	})
}

// ValidatePrerequisites recomputes Validated against th. When a threshold is
// unmet the record is left untouched and the error names every shortfall.
func (s *Soutenance) ValidatePrerequisites(th Thresholds, at time.Time) error {
	return s.move(ActionValidatePrerequisites, at, func() error {
		if unmet := s.Prerequisites.Unmet(th); len(unmet) > 0 {
			return unmetError(unmet)
		}
		s.Prerequisites.Validated = true
		return nil
	})
}

func (s *Soutenance) AddJuryMember(m JuryMember, at time.Time) error {
	return s.move(ActionAddJuryMember, at, func() error {
		m.Name = text.Normalize(m.Name)
		m.Email = text.Normalize(m.Email)
		m.Institution = text.Normalize(m.Institution)
		if m.ID.IsNil() {
			return dErrors.New(dErrors.CodeInvariantViolation, "jury member id is required")
		}
		if m.Name == "" {
			return dErrors.New(dErrors.CodeValidation, "jury member name is required")
		}
		if _, err := ParseJuryRole(string(m.Role)); err != nil {
			return err
		}
		for _, existing := range s.Jury {
			if m.Email != "" && existing.Email == m.Email {
				return dErrors.Newf(dErrors.CodeConflict, "%s already sits on this jury", m.Email)
			}
		}
		m.ReportSubmitted = false
		m.FavorableOpinion = nil
		m.ReportComment = ""
		m.ReportedAt = nil
		s.Jury = append(s.Jury, m)
		return nil
	})
}

func (s *Soutenance) RemoveJuryMember(memberID id.JuryMemberID, at time.Time) error {
	return s.move(ActionRemoveJuryMember, at, func() error {
		i := s.memberIndex(memberID)
		if i < 0 {
			return dErrors.New(dErrors.CodeNotFound, "jury member not found")
		}
		s.Jury = slices.Delete(s.Jury, i, i+1)
		return nil
	})
}

// ProposeJury freezes the jury once it has the required seats.
func (s *Soutenance) ProposeJury(at time.Time) error {
	return s.move(ActionProposeJury, at, func() error {
		return CheckComposition(s.Jury)
	})
}

// SubmitReport records a reporter's opinion. A member reports once.
func (s *Soutenance) SubmitReport(memberID id.JuryMemberID, favorable bool, comment string, at time.Time) error {
	return s.move(ActionSubmitReport, at, func() error {
		i := s.memberIndex(memberID)
		if i < 0 {
			return dErrors.New(dErrors.CodeNotFound, "jury member not found")
		}
		m := &s.Jury[i]
		if m.Role != JuryReporter {
			return dErrors.Newf(dErrors.CodeValidation, "only reporters submit reports, %s is %s", m.Name, m.Role)
		}
		if m.ReportSubmitted {
			return dErrors.Newf(dErrors.CodeConflict, "%s has already reported", m.Name)
		}
		m.ReportSubmitted = true
		m.FavorableOpinion = &favorable
		m.ReportComment = text.Truncate(text.Normalize(comment), maxCommentLength)
		m.ReportedAt = &at
		return nil
	})
}

func (s *Soutenance) Authorize(comment string, at time.Time) error {
	return s.move(ActionAuthorize, at, func() error {
		if err := CheckReports(s.Jury); err != nil {
			return err
		}
		s.AuthorizationComment = text.Truncate(text.Normalize(comment), maxCommentLength)
		s.AuthorizedAt = &at
		return nil
	})
}

// ProposeDate records a tentative date and place for the defense.
func (s *Soutenance) ProposeDate(date time.Time, place string, at time.Time) error {
	return s.move(ActionProposeDate, at, func() error {
		if !date.After(at) {
			return dErrors.New(dErrors.CodeValidation, "proposed date must be in the future")
		}
		s.ProposedDate = &date
		s.ProposedPlace = text.Normalize(place)
		return nil
	})
}

// Schedule fixes the defense date and place. Omitted values fall back to the
// last proposal.
func (s *Soutenance) Schedule(date *time.Time, place string, at time.Time) error {
	return s.move(ActionSchedule, at, func() error {
		when := date
		if when == nil {
			when = s.ProposedDate
		}
		where := text.Normalize(place)
		if where == "" {
			where = s.ProposedPlace
		}
		if when == nil || where == "" {
			return dErrors.New(dErrors.CodeValidation, "a date and a place are required to schedule the defense")
		}
		if !when.After(at) {
			return dErrors.New(dErrors.CodeValidation, "defense date must be in the future")
		}
		scheduled := *when
		s.ScheduledDate = &scheduled
		s.ScheduledPlace = where
		return nil
	})
}

func (s *Soutenance) RecordResult(r Result, at time.Time) error {
	return s.move(ActionRecordResult, at, func() error {
		res, err := r.normalize()
		if err != nil {
			return err
		}
		grade := res.Grade
		s.FinalGrade = &grade
		s.Mention = res.Mention
		s.Distinction = res.Distinction
		s.CompletedAt = &at
		return nil
	})
}

// Reject closes the defense. Allowed up to JURY_PROPOSED only.
func (s *Soutenance) Reject(motif string, at time.Time) error {
	return s.move(ActionReject, at, func() error {
		motif = text.Normalize(motif)
		if motif == "" {
			return dErrors.New(dErrors.CodeValidation, "a motif is required to reject a soutenance")
		}
		s.RejectionMotif = text.Truncate(motif, maxCommentLength)
		s.RejectedAt = &at
		return nil
	})
}

func (s *Soutenance) Member(memberID id.JuryMemberID) (JuryMember, bool) {
	i := s.memberIndex(memberID)
	if i < 0 {
		return JuryMember{}, false
	}
	return s.Jury[i], true
}

func (s *Soutenance) memberIndex(memberID id.JuryMemberID) int {
	return slices.IndexFunc(s.Jury, func(m JuryMember) bool { return m.ID == memberID })
}

func (s *Soutenance) Clone() *Soutenance {
	if s == nil {
		return nil
	}
	c := *s
	c.Jury = cloneJury(s.Jury)
	c.SubmittedAt = clonePtr(s.SubmittedAt)
	c.AuthorizedAt = clonePtr(s.AuthorizedAt)
	c.ProposedDate = clonePtr(s.ProposedDate)
	c.ScheduledDate = clonePtr(s.ScheduledDate)
	c.FinalGrade = clonePtr(s.FinalGrade)
	c.CompletedAt = clonePtr(s.CompletedAt)
	c.RejectedAt = clonePtr(s.RejectedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
