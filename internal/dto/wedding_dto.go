package dto

import (
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/models"
)

type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Hall    string `json:"hall"`
}

// WeddingRequest is the setup/edit form payload.
type WeddingRequest struct {
	BrideName      string  `json:"bride_name"`
	GroomName      string  `json:"groom_name"`
	Date           string  `json:"date"`
	Venue          Venue   `json:"venue"`
	PricePerPerson float64 `json:"price_per_person"`
}

// WeddingResponse carries the wedding profile plus the caller's resolved role.
type WeddingResponse struct {
	ID             uuid.UUID `json:"id"`
	BrideName      string    `json:"bride_name"`
	GroomName      string    `json:"groom_name"`
	Date           string    `json:"date"`
	Venue          Venue     `json:"venue"`
	PricePerPerson float64   `json:"price_per_person"`
	InviteCode     string    `json:"invite_code"`
	Role           string    `json:"role"`
}

func NewWeddingResponse(w *models.Wedding, role string) WeddingResponse {
	return WeddingResponse{
		ID:        w.ID,
		BrideName: w.BrideName,
		GroomName: w.GroomName,
		Date:      w.Date,
		Venue: Venue{
			Name:    w.VenueName,
			Address: w.VenueAddress,
			Hall:    w.VenueHall,
		},
		PricePerPerson: w.PricePerPerson,
		InviteCode:     w.InviteCode,
		Role:           role,
	}
}
