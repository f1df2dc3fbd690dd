package handler

import (
	"time"

	"github.com/google/uuid"

	"doctorat/internal/soutenance/models"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

type CreateDraftRequest struct {
	DoctorantID  string `json:"doctorant_id"`
	SupervisorID string `json:"supervisor_id"`
	ThesisTitle  string `json:"thesis_title"`

	doctorantID  id.DoctorantID
	supervisorID id.SupervisorID
}

func (r *CreateDraftRequest) Validate() error {
	var err error
	if r.doctorantID, err = id.ParseDoctorantID(r.DoctorantID); err != nil {
		return err
	}
	if r.supervisorID, err = id.ParseSupervisorID(r.SupervisorID); err != nil {
		return err
	}
	if text.IsBlank(r.ThesisTitle) {
		return dErrors.New(dErrors.CodeValidation, "thesis_title is required")
	}
	return nil
}

// SubmitRequest carries the documents of a submission. The parties are only
// read when a new record is created.
type SubmitRequest struct {
	DoctorantID       string `json:"doctorant_id,omitempty"`
	SupervisorID      string `json:"supervisor_id,omitempty"`
	ThesisTitle       string `json:"thesis_title,omitempty"`
	ManuscriptRef     string `json:"manuscript_ref"`
	AntiPlagiarismRef string `json:"anti_plagiarism_ref"`
	AuthorizationRef  string `json:"authorization_ref,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	if text.IsBlank(r.ManuscriptRef) {
		return dErrors.New(dErrors.CodeValidation, "manuscript_ref is required")
	}
	if text.IsBlank(r.AntiPlagiarismRef) {
		return dErrors.New(dErrors.CodeValidation, "anti_plagiarism_ref is required")
	}
	return nil
}

type UpdateDraftRequest struct {
	ThesisTitle string `json:"thesis_title"`
}

func (r *UpdateDraftRequest) Validate() error {
	if text.IsBlank(r.ThesisTitle) {
		return dErrors.New(dErrors.CodeValidation, "thesis_title is required")
	}
	return nil
}

type PrerequisitesRequest struct {
	Publications  int `json:"publications_count"`
	Conferences   int `json:"conferences_count"`
	TrainingHours int `json:"training_hours"`
}

func (r *PrerequisitesRequest) Validate() error {
	if r.Publications < 0 || r.Conferences < 0 || r.TrainingHours < 0 {
		return dErrors.New(dErrors.CodeValidation, "prerequisite counts cannot be negative")
	}
	return nil
}

type JuryMemberRequest struct {
	PersonID    string `json:"person_id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Institution string `json:"institution,omitempty"`
	Role        string `json:"role"`

	personID *uuid.UUID
	role     models.JuryRole
}

func (r *JuryMemberRequest) Validate() error {
	if r.PersonID != "" {
		p, err := uuid.Parse(r.PersonID)
		if err != nil || p == uuid.Nil {
			return dErrors.New(dErrors.CodeInvalidInput, "person_id must be a UUID")
		}
		r.personID = &p
	}
	if text.IsBlank(r.Name) {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	var err error
	r.role, err = models.ParseJuryRole(r.Role)
	return err
}

type ReportRequest struct {
	Favorable *bool  `json:"favorable"`
	Comment   string `json:"comment,omitempty"`
}

func (r *ReportRequest) Validate() error {
	if r.Favorable == nil {
		return dErrors.New(dErrors.CodeValidation, "favorable is required")
	}
	r.Comment = text.Normalize(r.Comment)
	return nil
}

// CommentRequest carries the optional comment of an authorization.
type CommentRequest struct {
	Comment string `json:"comment,omitempty"`
}

func (r *CommentRequest) Validate() error {
	r.Comment = text.Normalize(r.Comment)
	return nil
}

type RejectRequest struct {
	Motif string `json:"motif"`
}

func (r *RejectRequest) Validate() error {
	if text.IsBlank(r.Motif) {
		return dErrors.New(dErrors.CodeValidation, "motif is required")
	}
	return nil
}

// DateRequest proposes or fixes the defense slot. Date is RFC 3339.
type DateRequest struct {
	Date  string `json:"date,omitempty"`
	Place string `json:"place,omitempty"`

	date *time.Time
}

func (r *DateRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	d, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "date must be an RFC 3339 timestamp")
	}
	r.date = &d
	return nil
}

type ResultRequest struct {
	Grade           *float64 `json:"grade"`
	Mention         string   `json:"mention"`
	WithDistinction bool     `json:"with_distinction,omitempty"`

	mention models.Mention
}

func (r *ResultRequest) Validate() error {
	if r.Grade == nil {
		return dErrors.New(dErrors.CodeValidation, "grade is required")
	}
	var err error
	r.mention, err = models.ParseMention(r.Mention)
	return err
}
