package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginToken is a single-use passwordless sign-in token, mailed out as a
// magic link. The raw token never touches the database; only its sha256 hash.
type LoginToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"not null;size:255;index" json:"email"`
	TokenHash  string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	InviteCode string    `gorm:"size:64" json:"invite_code"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Consumed   bool      `gorm:"default:false" json:"consumed"`
	CreatedAt  time.Time `json:"created_at"`
}
