package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doctorat/internal/soutenance/models"
	"doctorat/pkg/platform/events"
)

func (s *Service) event(topic events.Topic, sout *models.Soutenance, from models.Status, comment string) events.Event {
	attrs := map[string]string{
		"supervisor_id": sout.SupervisorID.String(),
	}
	if sout.ScheduledDate != nil {
		attrs["scheduled_date"] = sout.ScheduledDate.Format(time.DateOnly)
		attrs["scheduled_time"] = sout.ScheduledDate.Format("15:04")
		attrs["scheduled_place"] = sout.ScheduledPlace
	}
	if sout.Status == models.StatusCompleted {
		attrs["mention"] = string(sout.Mention)
	}
	if sout.Status == models.StatusRejected {
		attrs["motif"] = sout.RejectionMotif
	}
	return events.Event{
		Topic:       topic,
		Aggregate:   "soutenance",
		AggregateID: sout.ID.String(),
		DoctorantID: sout.DoctorantID.String(),
		FromState:   from.String(),
		ToState:     sout.Status.String(),
		Subject:     sout.ThesisTitle,
		Comment:     comment,
		Attributes:  attrs,
	}
}

// invitations builds one jury_invitation event per seated member. The
// candidate is named from the directory when a lookup is configured.
func (s *Service) invitations(ctx context.Context, sout *models.Soutenance) []events.Event {
	subject := "Jury invitation: " + sout.ThesisTitle
	var candidate string
	if s.profiles != nil {
		candidate = s.profiles.GetProfile(ctx, uuid.UUID(sout.DoctorantID)).DisplayName()
		subject = fmt.Sprintf("Jury invitation for the defense of %s: %s", candidate, sout.ThesisTitle)
	}
	out := make([]events.Event, 0, len(sout.Jury))
	for _, m := range sout.Jury {
		attrs := map[string]string{
			"member_id": m.ID.String(),
			"name":      m.Name,
			"email":     m.Email,
			"role":      string(m.Role),
		}
		if m.Institution != "" {
			attrs["institution"] = m.Institution
		}
		if m.PersonID != nil {
			attrs["person_id"] = m.PersonID.String()
		}
		if candidate != "" {
			attrs["candidate_name"] = candidate
		}
		out = append(out, events.Event{
			Topic:       events.TopicJuryInvitation,
			Aggregate:   "soutenance",
			AggregateID: sout.ID.String(),
			DoctorantID: sout.DoctorantID.String(),
			ToState:     sout.Status.String(),
			Subject:     subject,
			Attributes:  attrs,
		})
	}
	return out
}
