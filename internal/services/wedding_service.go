package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/cache"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrWeddingExists  = errors.New("a wedding already exists for this account")
	ErrNoWedding      = errors.New("no wedding found for this account")
	ErrNotOwner       = errors.New("only the wedding owner can do this")
	ErrInvalidInvite  = errors.New("invalid invite code")
	ErrInvalidWedding = errors.New("invalid wedding details")
)

const (
	RoleOwner        = "owner"
	RoleCollaborator = "collaborator"
)

// Access is a resolved wedding plus the role the identity holds on it.
type Access struct {
	Wedding *models.Wedding
	Role    string
}

type WeddingService struct {
	db   *gorm.DB
	meta cache.Metadata
}

func NewWeddingService(db *gorm.DB, meta cache.Metadata) *WeddingService {
	return &WeddingService{db: db, meta: meta}
}

// ResolveForUser finds the wedding an identity may act on. Ownership wins;
// otherwise the cached wedding pointer, then the collaborator table by email.
// A stale pointer to a deleted wedding falls through to the next path.
func (s *WeddingService) ResolveForUser(ctx context.Context, userID uuid.UUID, email string) (*Access, error) {
	var owned models.Wedding
	err := s.db.Where("user_id = ?", userID).First(&owned).Error
	if err == nil {
		return &Access{Wedding: &owned, Role: RoleOwner}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if weddingID, ok, merr := s.meta.WeddingID(ctx, userID); merr == nil && ok {
		var pointed models.Wedding
		err = s.db.First(&pointed, "id = ?", weddingID).Error
		if err == nil {
			return &Access{Wedding: &pointed, Role: RoleCollaborator}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else if merr != nil {
		return nil, merr
	}

	var collab models.Collaborator
	err = s.db.Where("email = ?", strings.ToLower(email)).First(&collab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoWedding
	}
	if err != nil {
		return nil, err
	}

	var shared models.Wedding
	if err := s.db.First(&shared, "id = ?", collab.WeddingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoWedding
		}
		return nil, err
	}
	return &Access{Wedding: &shared, Role: RoleCollaborator}, nil
}

// Setup creates the identity's wedding. One wedding per owner.
func (s *WeddingService) Setup(ctx context.Context, userID uuid.UUID, req *dto.WeddingRequest) (*models.Wedding, error) {
	if err := validateWedding(req); err != nil {
		return nil, err
	}

	var existing models.Wedding
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, ErrWeddingExists
	}

	code, err := newInviteCode()
	if err != nil {
		return nil, err
	}

	wedding := models.Wedding{
		ID:             uuid.New(),
		UserID:         userID,
		BrideName:      strings.TrimSpace(req.BrideName),
		GroomName:      strings.TrimSpace(req.GroomName),
		Date:           req.Date,
		VenueName:      strings.TrimSpace(req.Venue.Name),
		VenueAddress:   strings.TrimSpace(req.Venue.Address),
		VenueHall:      strings.TrimSpace(req.Venue.Hall),
		PricePerPerson: req.PricePerPerson,
		InviteCode:     code,
	}

	if err := s.db.Create(&wedding).Error; err != nil {
		return nil, fmt.Errorf("failed to create wedding: %w", err)
	}

	// Pointer is a convenience for the resolver; the owned row is the source
	// of truth, so a cache failure does not fail setup.
	if err := s.meta.SetWeddingID(ctx, userID, wedding.ID); err != nil {
		slog.Warn("failed to set wedding pointer", "user_id", userID, "error", err)
	}
	return &wedding, nil
}

// Update edits the wedding profile. Owner only; the invite code never changes.
func (s *WeddingService) Update(ctx context.Context, userID uuid.UUID, email string, req *dto.WeddingRequest) (*models.Wedding, error) {
	if err := validateWedding(req); err != nil {
		return nil, err
	}

	access, err := s.ResolveForUser(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if access.Role != RoleOwner {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{
		"bride_name":       strings.TrimSpace(req.BrideName),
		"groom_name":       strings.TrimSpace(req.GroomName),
		"date":             req.Date,
		"venue_name":       strings.TrimSpace(req.Venue.Name),
		"venue_address":    strings.TrimSpace(req.Venue.Address),
		"venue_hall":       strings.TrimSpace(req.Venue.Hall),
		"price_per_person": req.PricePerPerson,
	}
	if err := s.db.Model(access.Wedding).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update wedding: %w", err)
	}
	return access.Wedding, nil
}

// ByInviteCode resolves a wedding from its public invite code.
func (s *WeddingService) ByInviteCode(code string) (*models.Wedding, error) {
	var wedding models.Wedding
	if err := s.db.Where("invite_code = ?", code).First(&wedding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvite
		}
		return nil, err
	}
	return &wedding, nil
}

func validateWedding(req *dto.WeddingRequest) error {
	switch {
	case len(strings.TrimSpace(req.BrideName)) < 2:
		return fmt.Errorf("%w: bride name must be at least 2 characters", ErrInvalidWedding)
	case len(strings.TrimSpace(req.GroomName)) < 2:
		return fmt.Errorf("%w: groom name must be at least 2 characters", ErrInvalidWedding)
	case strings.TrimSpace(req.Date) == "":
		return fmt.Errorf("%w: date is required", ErrInvalidWedding)
	case len(strings.TrimSpace(req.Venue.Name)) < 2:
		return fmt.Errorf("%w: venue name must be at least 2 characters", ErrInvalidWedding)
	case len(strings.TrimSpace(req.Venue.Address)) < 5:
		return fmt.Errorf("%w: venue address must be at least 5 characters", ErrInvalidWedding)
	case len(strings.TrimSpace(req.Venue.Hall)) < 2:
		return fmt.Errorf("%w: venue hall must be at least 2 characters", ErrInvalidWedding)
	case req.PricePerPerson < 0:
		return fmt.Errorf("%w: price per person cannot be negative", ErrInvalidWedding)
	}
	return nil
}

const inviteCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newInviteCode() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
