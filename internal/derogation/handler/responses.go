package handler

import (
	"time"

	"doctorat/internal/derogation/models"
)

type DerogationResponse struct {
	ID                   string     `json:"id"`
	DoctorantID          string     `json:"doctorant_id"`
	SupervisorID         string     `json:"supervisor_id"`
	InscriptionID        string     `json:"inscription_id,omitempty"`
	ExemptionType        string     `json:"exemption_type"`
	Status               string     `json:"status"`
	Motif                string     `json:"motif"`
	RequestedYear        int        `json:"requested_year"`
	SupervisorComment    string     `json:"supervisor_comment,omitempty"`
	SupervisorDecisionAt *time.Time `json:"supervisor_decision_at,omitempty"`
	AdminComment         string     `json:"admin_comment,omitempty"`
	AdminDecisionAt      *time.Time `json:"admin_decision_at,omitempty"`
	ExpirationDate       string     `json:"expiration_date,omitempty"`
	Valid                bool       `json:"valid"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Version              int        `json:"version"`
}

type DerogationListResponse struct {
	Derogations []DerogationResponse `json:"derogations"`
}

func toResponse(d *models.Derogation, today time.Time) DerogationResponse {
	resp := DerogationResponse{
		ID:                   d.ID.String(),
		DoctorantID:          d.DoctorantID.String(),
		SupervisorID:         d.SupervisorID.String(),
		ExemptionType:        d.Type.String(),
		Status:               d.Status.String(),
		Motif:                d.Motif,
		RequestedYear:        d.RequestedYear,
		SupervisorComment:    d.SupervisorComment,
		SupervisorDecisionAt: d.SupervisorDecisionAt,
		AdminComment:         d.AdminComment,
		AdminDecisionAt:      d.AdminDecisionAt,
		Valid:                d.IsValidOn(today),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
		Version:              d.Version,
	}
	if d.InscriptionID != nil {
		resp.InscriptionID = d.InscriptionID.String()
	}
	if d.ExpirationDate != nil {
		resp.ExpirationDate = d.ExpirationDate.Format(time.DateOnly)
	}
	return resp
}

func toListResponse(list []*models.Derogation, today time.Time) DerogationListResponse {
	out := DerogationListResponse{Derogations: make([]DerogationResponse, 0, len(list))}
	for _, d := range list {
		out.Derogations = append(out.Derogations, toResponse(d, today))
	}
	return out
}
