package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can own or collaborate on a wedding.
// Passwordless users (magic-link sign-in) carry an empty hash until they
// complete the set-password step.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `json:"-"`
	HasPassword  bool           `gorm:"default:false" json:"has_password"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
