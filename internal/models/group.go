package models

import (
	"time"

	"github.com/google/uuid"
)

// Side is the partner affiliation of a guest or group.
type Side string

const (
	SideBride Side = "bride"
	SideGroom Side = "groom"
)

func (s Side) Valid() bool {
	return s == SideBride || s == SideGroom
}

// Group buckets guests. Deleting a group dissociates its guests, it never
// deletes them.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Side      Side      `gorm:"not null;size:10" json:"side"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index" json:"wedding_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
