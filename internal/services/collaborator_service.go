package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/cache"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/queue"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	ErrCannotShareWithSelf  = errors.New("cannot share a wedding with its owner")
)

type CollaboratorService struct {
	db   *gorm.DB
	meta cache.Metadata
	mail queue.Enqueuer
}

func NewCollaboratorService(db *gorm.DB, meta cache.Metadata, mail queue.Enqueuer) *CollaboratorService {
	return &CollaboratorService{db: db, meta: meta, mail: mail}
}

func (s *CollaboratorService) List(weddingID uuid.UUID) ([]dto.CollaboratorResponse, error) {
	var collabs []models.Collaborator
	err := s.db.Where("wedding_id = ?", weddingID).
		Order("created_at ASC").
		Find(&collabs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}

	out := make([]dto.CollaboratorResponse, 0, len(collabs))
	for _, c := range collabs {
		out = append(out, dto.CollaboratorResponse{Email: c.Email})
	}
	return out, nil
}

// Share grants an email access to the wedding and queues the invite email.
// The two steps fail independently: membership can be recorded while the
// notification is not, and the response says which happened. Re-sharing
// with an existing collaborator re-sends the invite without duplicating
// the membership row.
func (s *CollaboratorService) Share(ctx context.Context, wedding *models.Wedding, ownerEmail, email string) (*dto.ShareResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if email == strings.ToLower(ownerEmail) {
		return nil, ErrCannotShareWithSelf
	}

	collab := models.Collaborator{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Email:     email,
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&collab).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	resp := &dto.ShareResponse{CollaboratorAdded: true}

	err = s.mail.EnqueueInviteEmail(ctx, queue.InviteEmailPayload{
		RecipientEmail: email,
		InviteCode:     wedding.InviteCode,
		BrideName:      wedding.BrideName,
		GroomName:      wedding.GroomName,
	})
	if err != nil {
		resp.Message = "collaborator added but the invite email could not be queued"
		return resp, nil
	}
	resp.NotificationQueued = true
	return resp, nil
}

// AcceptInvite attaches the identity to the invite's wedding: membership
// row upserted, cached wedding pointer set. Next tells the client where to
// send the user, set-password for passwordless accounts.
func (s *CollaboratorService) AcceptInvite(ctx context.Context, code string, userID uuid.UUID, email string, hasPassword bool) (*dto.AcceptInviteResponse, error) {
	var wedding models.Wedding
	if err := s.db.Where("invite_code = ?", code).First(&wedding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvite
		}
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if wedding.UserID != userID {
		collab := models.Collaborator{
			ID:        uuid.New(),
			WeddingID: wedding.ID,
			Email:     email,
		}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&collab).Error; err != nil {
			return nil, fmt.Errorf("failed to record membership: %w", err)
		}
		if err := s.meta.SetWeddingID(ctx, userID, wedding.ID); err != nil {
			return nil, fmt.Errorf("failed to set wedding pointer: %w", err)
		}
	}

	next := "dashboard"
	if !hasPassword {
		next = "set-password"
	}
	return &dto.AcceptInviteResponse{WeddingID: wedding.ID, Next: next}, nil
}

// Revoke removes a collaborator. Owners revoke anyone; a collaborator may
// only revoke themselves, which also clears their cached wedding pointer.
func (s *CollaboratorService) Revoke(ctx context.Context, wedding *models.Wedding, callerRole string, callerID uuid.UUID, callerEmail, target string) error {
	target = strings.TrimSpace(strings.ToLower(target))
	callerEmail = strings.ToLower(callerEmail)

	if callerRole != RoleOwner && target != callerEmail {
		return ErrNotOwner
	}

	result := s.db.Where("wedding_id = ? AND email = ?", wedding.ID, target).
		Delete(&models.Collaborator{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke collaborator: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCollaboratorNotFound
	}

	if target == callerEmail {
		if err := s.meta.ClearWeddingID(ctx, callerID); err != nil {
			return fmt.Errorf("failed to clear wedding pointer: %w", err)
		}
	}
	return nil
}
