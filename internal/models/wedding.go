package models

import (
	"time"

	"github.com/google/uuid"
)

// Wedding is the root record everything else hangs off. Exactly one per
// owner; created at setup and never deleted in-app.
type Wedding struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BrideName      string    `gorm:"not null;size:255" json:"bride_name"`
	GroomName      string    `gorm:"not null;size:255" json:"groom_name"`
	Date           string    `gorm:"not null;size:32" json:"date"`
	VenueName      string    `gorm:"size:255" json:"venue_name"`
	VenueAddress   string    `gorm:"size:255" json:"venue_address"`
	VenueHall      string    `gorm:"size:255" json:"venue_hall"`
	PricePerPerson float64   `gorm:"default:0" json:"price_per_person"`
	InviteCode     string    `gorm:"uniqueIndex;not null;size:64" json:"invite_code"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
