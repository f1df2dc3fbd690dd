package handler

import (
	"time"

	"doctorat/internal/soutenance/models"
)

type JuryMemberResponse struct {
	ID               string     `json:"id"`
	PersonID         string     `json:"person_id,omitempty"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Institution      string     `json:"institution,omitempty"`
	Role             string     `json:"role"`
	ReportSubmitted  bool       `json:"report_submitted"`
	FavorableOpinion *bool      `json:"favorable_opinion,omitempty"`
	ReportComment    string     `json:"report_comment,omitempty"`
	ReportedAt       *time.Time `json:"reported_at,omitempty"`
}

type SoutenanceResponse struct {
	ID                   string               `json:"id"`
	DoctorantID          string               `json:"doctorant_id"`
	SupervisorID         string               `json:"supervisor_id"`
	Status               string               `json:"status"`
	ThesisTitle          string               `json:"thesis_title"`
	ManuscriptRef        string               `json:"manuscript_ref,omitempty"`
	AntiPlagiarismRef    string               `json:"anti_plagiarism_ref,omitempty"`
	AuthorizationRef     string               `json:"authorization_ref,omitempty"`
	Prerequisites        models.Prerequisites `json:"prerequisites"`
	Jury                 []JuryMemberResponse `json:"jury"`
	SubmittedAt          *time.Time           `json:"submitted_at,omitempty"`
	AuthorizedAt         *time.Time           `json:"authorized_at,omitempty"`
	AuthorizationComment string               `json:"authorization_comment,omitempty"`
	ProposedDate         *time.Time           `json:"proposed_date,omitempty"`
	ProposedPlace        string               `json:"proposed_place,omitempty"`
	ScheduledDate        *time.Time           `json:"scheduled_date,omitempty"`
	ScheduledPlace       string               `json:"scheduled_place,omitempty"`
	FinalGrade           *float64             `json:"final_grade,omitempty"`
	Mention              string               `json:"mention,omitempty"`
	Distinction          bool                 `json:"distinction"`
	CompletedAt          *time.Time           `json:"completed_at,omitempty"`
	RejectionMotif       string               `json:"rejection_motif,omitempty"`
	RejectedAt           *time.Time           `json:"rejected_at,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
	Version              int                  `json:"version"`
}

type SoutenanceListResponse struct {
	Soutenances []SoutenanceResponse `json:"soutenances"`
}

func toResponse(s *models.Soutenance) SoutenanceResponse {
	jury := make([]JuryMemberResponse, 0, len(s.Jury))
	for _, m := range s.Jury {
		jm := JuryMemberResponse{
			ID:               m.ID.String(),
			Name:             m.Name,
			Email:            m.Email,
			Institution:      m.Institution,
			Role:             string(m.Role),
			ReportSubmitted:  m.ReportSubmitted,
			FavorableOpinion: m.FavorableOpinion,
			ReportComment:    m.ReportComment,
			ReportedAt:       m.ReportedAt,
		}
		if m.PersonID != nil {
			jm.PersonID = m.PersonID.String()
		}
		jury = append(jury, jm)
	}
	return SoutenanceResponse{
		ID:                   s.ID.String(),
		DoctorantID:          s.DoctorantID.String(),
		SupervisorID:         s.SupervisorID.String(),
		Status:               s.Status.String(),
		ThesisTitle:          s.ThesisTitle,
		ManuscriptRef:        s.ManuscriptRef,
		AntiPlagiarismRef:    s.AntiPlagiarismRef,
		AuthorizationRef:     s.AuthorizationRef,
		Prerequisites:        s.Prerequisites,
		Jury:                 jury,
		SubmittedAt:          s.SubmittedAt,
		AuthorizedAt:         s.AuthorizedAt,
		AuthorizationComment: s.AuthorizationComment,
		ProposedDate:         s.ProposedDate,
		ProposedPlace:        s.ProposedPlace,
		ScheduledDate:        s.ScheduledDate,
		ScheduledPlace:       s.ScheduledPlace,
		FinalGrade:           s.FinalGrade,
		Mention:              string(s.Mention),
		Distinction:          s.Distinction,
		CompletedAt:          s.CompletedAt,
		RejectionMotif:       s.RejectionMotif,
		RejectedAt:           s.RejectedAt,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		Version:              s.Version,
	}
}

func toListResponse(list []*models.Soutenance) SoutenanceListResponse {
	out := SoutenanceListResponse{Soutenances: make([]SoutenanceResponse, 0, len(list))}
	for _, s := range list {
		out.Soutenances = append(out.Soutenances, toResponse(s))
	}
	return out
}
