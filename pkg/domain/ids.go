package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "doctorat/pkg/domain-errors"
)

// Typed identifiers. Each workflow record and external party gets its own type
// so a DerogationID can never be passed where an InscriptionID is expected.
type (
	DoctorantID   uuid.UUID
	SupervisorID  uuid.UUID
	CampaignID    uuid.UUID
	InscriptionID uuid.UUID
	DerogationID  uuid.UUID
	SoutenanceID  uuid.UUID
	JuryMemberID  uuid.UUID
	ActorID       uuid.UUID
)

func (id DoctorantID) String() string   { return uuid.UUID(id).String() }
func (id SupervisorID) String() string  { return uuid.UUID(id).String() }
func (id CampaignID) String() string    { return uuid.UUID(id).String() }
func (id InscriptionID) String() string { return uuid.UUID(id).String() }
func (id DerogationID) String() string  { return uuid.UUID(id).String() }
func (id SoutenanceID) String() string  { return uuid.UUID(id).String() }
func (id JuryMemberID) String() string  { return uuid.UUID(id).String() }
func (id ActorID) String() string       { return uuid.UUID(id).String() }

func (id DoctorantID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SupervisorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CampaignID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id InscriptionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id DerogationID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SoutenanceID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id JuryMemberID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ActorID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }

func parseUUID(kind, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s", kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be nil", kind)
	}
	return u, nil
}

func ParseDoctorantID(s string) (DoctorantID, error) {
	u, err := parseUUID("doctorant_id", s)
	return DoctorantID(u), err
}

func ParseSupervisorID(s string) (SupervisorID, error) {
	u, err := parseUUID("supervisor_id", s)
	return SupervisorID(u), err
}

func ParseCampaignID(s string) (CampaignID, error) {
	u, err := parseUUID("campaign_id", s)
	return CampaignID(u), err
}

func ParseInscriptionID(s string) (InscriptionID, error) {
	u, err := parseUUID("inscription_id", s)
	return InscriptionID(u), err
}

func ParseDerogationID(s string) (DerogationID, error) {
	u, err := parseUUID("derogation_id", s)
	return DerogationID(u), err
}

func ParseSoutenanceID(s string) (SoutenanceID, error) {
	u, err := parseUUID("soutenance_id", s)
	return SoutenanceID(u), err
}

func ParseJuryMemberID(s string) (JuryMemberID, error) {
	u, err := parseUUID("jury_member_id", s)
	return JuryMemberID(u), err
}

func ParseActorID(s string) (ActorID, error) {
	u, err := parseUUID("actor_id", s)
	return ActorID(u), err
}
