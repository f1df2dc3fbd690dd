package handler

import (
	"time"

	"doctorat/internal/inscription/models"
)

type InscriptionResponse struct {
	ID                    string     `json:"id"`
	DoctorantID           string     `json:"doctorant_id"`
	SupervisorID          string     `json:"supervisor_id,omitempty"`
	CampaignID            string     `json:"campaign_id"`
	Kind                  string     `json:"kind"`
	Status                string     `json:"status"`
	Subject               string     `json:"subject"`
	Laboratory            string     `json:"laboratory,omitempty"`
	FirstRegistrationDate string     `json:"first_registration_date,omitempty"`
	SubmittedAt           *time.Time `json:"submitted_at,omitempty"`
	SupervisorComment     string     `json:"supervisor_comment,omitempty"`
	SupervisorValidatedAt *time.Time `json:"supervisor_validated_at,omitempty"`
	AdminComment          string     `json:"admin_comment,omitempty"`
	AdminValidatedAt      *time.Time `json:"admin_validated_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	Version               int        `json:"version"`
}

type InscriptionListResponse struct {
	Inscriptions []InscriptionResponse `json:"inscriptions"`
}

func toResponse(ins *models.Inscription) InscriptionResponse {
	resp := InscriptionResponse{
		ID:                    ins.ID.String(),
		DoctorantID:           ins.DoctorantID.String(),
		CampaignID:            ins.CampaignID.String(),
		Kind:                  ins.Kind.String(),
		Status:                ins.Status.String(),
		Subject:               ins.Subject,
		Laboratory:            ins.Laboratory,
		SubmittedAt:           ins.SubmittedAt,
		SupervisorComment:     ins.SupervisorComment,
		SupervisorValidatedAt: ins.SupervisorValidatedAt,
		AdminComment:          ins.AdminComment,
		AdminValidatedAt:      ins.AdminValidatedAt,
		CreatedAt:             ins.CreatedAt,
		UpdatedAt:             ins.UpdatedAt,
		Version:               ins.Version,
	}
	if ins.SupervisorID != nil {
		resp.SupervisorID = ins.SupervisorID.String()
	}
	if ins.FirstRegistrationDate != nil {
		resp.FirstRegistrationDate = ins.FirstRegistrationDate.Format(time.DateOnly)
	}
	return resp
}

func toListResponse(list []*models.Inscription) InscriptionListResponse {
	out := InscriptionListResponse{Inscriptions: make([]InscriptionResponse, 0, len(list))}
	for _, ins := range list {
		out.Inscriptions = append(out.Inscriptions, toResponse(ins))
	}
	return out
}
