package dto

import (
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/models"
)

type CompanionInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdult   bool   `json:"is_adult"`
}

type GiftInput struct {
	Type        models.GiftType `json:"type"`
	Amount      *float64        `json:"amount"`
	Description *string         `json:"description"`
}

type CreateGuestRequest struct {
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Phone      *string           `json:"phone"`
	Attendance models.Attendance `json:"attendance"`
	Side       models.Side       `json:"side"`
	GroupID    *uuid.UUID        `json:"group_id"`
	Notes      *string           `json:"notes"`
	Companions []CompanionInput  `json:"companions"`
	Gift       *GiftInput        `json:"gift"`
}

// UpdateGuestRequest applies partial updates. Companions, when present,
// replace the whole list. Ungroup and RemoveGift are the explicit null
// targets: setting GroupID and Ungroup together is rejected.
type UpdateGuestRequest struct {
	FirstName  *string            `json:"first_name"`
	LastName   *string            `json:"last_name"`
	Phone      *string            `json:"phone"`
	Attendance *models.Attendance `json:"attendance"`
	Side       *models.Side       `json:"side"`
	GroupID    *uuid.UUID         `json:"group_id"`
	Ungroup    bool               `json:"ungroup"`
	Notes      *string            `json:"notes"`
	Companions *[]CompanionInput  `json:"companions"`
	Gift       *GiftInput         `json:"gift"`
	RemoveGift bool               `json:"remove_gift"`
}

type GuestListResponse struct {
	Guests []models.Guest `json:"guests"`
	Total  int            `json:"total"`
}
