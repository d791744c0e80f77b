package models

import (
	"time"

	"github.com/google/uuid"
)

// Collaborator grants a non-owner email access to a wedding. Membership is a
// set keyed by (wedding_id, email); re-adding an existing member is a no-op.
type Collaborator struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collaborators_wedding_email" json:"wedding_id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex:idx_collaborators_wedding_email" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
