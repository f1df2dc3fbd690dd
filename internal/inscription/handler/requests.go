package handler

import (
	"time"

	"doctorat/internal/inscription/models"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

type CreateInscriptionRequest struct {
	DoctorantID           string `json:"doctorant_id"`
	SupervisorID          string `json:"supervisor_id,omitempty"`
	CampaignID            string `json:"campaign_id"`
	Kind                  string `json:"kind"`
	Subject               string `json:"subject"`
	Laboratory            string `json:"laboratory,omitempty"`
	FirstRegistrationDate string `json:"first_registration_date,omitempty"`

	doctorantID  id.DoctorantID
	supervisorID *id.SupervisorID
	campaignID   id.CampaignID
	kind         models.Kind
	firstDate    *time.Time
}

func (r *CreateInscriptionRequest) Validate() error {
	var err error
	if r.doctorantID, err = id.ParseDoctorantID(r.DoctorantID); err != nil {
		return err
	}
	if r.campaignID, err = id.ParseCampaignID(r.CampaignID); err != nil {
		return err
	}
	if r.SupervisorID != "" {
		sid, err := id.ParseSupervisorID(r.SupervisorID)
		if err != nil {
			return err
		}
		r.supervisorID = &sid
	}
	if r.kind, err = models.ParseKind(r.Kind); err != nil {
		return err
	}
	if text.IsBlank(r.Subject) {
		return dErrors.New(dErrors.CodeValidation, "subject is required")
	}
	if r.FirstRegistrationDate != "" {
		d, err := time.Parse(time.DateOnly, r.FirstRegistrationDate)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "first_registration_date must be YYYY-MM-DD")
		}
		r.firstDate = &d
	}
	return nil
}

type DecisionRequest struct {
	Comment string `json:"comment,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	r.Comment = text.Normalize(r.Comment)
	return nil
}

// AdminValidationRequest may assign the supervisor of a FIRST inscription.
type AdminValidationRequest struct {
	Comment      string `json:"comment,omitempty"`
	SupervisorID string `json:"supervisor_id,omitempty"`

	supervisorID *id.SupervisorID
}

func (r *AdminValidationRequest) Validate() error {
	r.Comment = text.Normalize(r.Comment)
	if r.SupervisorID == "" {
		return nil
	}
	sid, err := id.ParseSupervisorID(r.SupervisorID)
	if err != nil {
		return err
	}
	r.supervisorID = &sid
	return nil
}
