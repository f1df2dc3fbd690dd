// Package profile resolves candidate and staff profiles from the remote
// directory. Lookups never fail outright: when the directory is unreachable
// the caller receives a placeholder it can detect with Profile.Placeholder.
package profile

import (
	"github.com/google/uuid"
)

// Profile is a read-only copy of a directory entry. It is never persisted
// with workflow records.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty"`
	Laboratory   string     `json:"laboratory,omitempty"`

	// Placeholder is true when the directory could not be reached.
	Placeholder bool `json:"placeholder"`
}

const placeholderName = "Unknown"

// Placeholder returns the degraded-mode profile for profileID.
func Placeholder(profileID uuid.UUID) Profile {
	return Profile{
		ID:          profileID,
		Name:        placeholderName,
		Surname:     placeholderName,
		Placeholder: true,
	}
}

// DisplayName is "Name Surname", or the id for placeholders.
func (p Profile) DisplayName() string {
	if p.Placeholder {
		return "profile " + p.ID.String()
	}
	return p.Name + " " + p.Surname
}
