package handler

import (
	"doctorat/internal/derogation/models"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

// RequestDerogationRequest opens an exemption. supervisor_id may be omitted.
type RequestDerogationRequest struct {
	DoctorantID   string `json:"doctorant_id"`
	SupervisorID  string `json:"supervisor_id,omitempty"`
	InscriptionID string `json:"inscription_id,omitempty"`
	ExemptionType string `json:"exemption_type"`
	Motif         string `json:"motif"`

	doctorantID   id.DoctorantID
	supervisorID  *id.SupervisorID
	inscriptionID *id.InscriptionID
	exemptionType models.ExemptionType
}

func (r *RequestDerogationRequest) Validate() error {
	var err error
	if r.doctorantID, err = id.ParseDoctorantID(r.DoctorantID); err != nil {
		return err
	}
	if r.SupervisorID != "" {
		sid, err := id.ParseSupervisorID(r.SupervisorID)
		if err != nil {
			return err
		}
		r.supervisorID = &sid
	}
	if r.InscriptionID != "" {
		iid, err := id.ParseInscriptionID(r.InscriptionID)
		if err != nil {
			return err
		}
		r.inscriptionID = &iid
	}
	if r.exemptionType, err = models.ParseExemptionType(r.ExemptionType); err != nil {
		return err
	}
	if text.IsBlank(r.Motif) {
		return dErrors.New(dErrors.CodeValidation, "motif is required")
	}
	return nil
}

// DecisionRequest carries the optional comment of an approval, refusal or cancellation.
type DecisionRequest struct {
	Comment string `json:"comment,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	r.Comment = text.Normalize(r.Comment)
	return nil
}
