package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/access"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/stats"
	"gorm.io/gorm"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrInvalidGuest  = errors.New("invalid guest details")
)

type GuestService struct {
	db *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{db: db}
}

// List loads the wedding's guests with companions and gifts, then applies
// the view filter in memory. The full set is small enough that filtering
// after the load keeps search semantics in one place.
func (s *GuestService) List(weddingID uuid.UUID, filter stats.Filter) ([]models.Guest, error) {
	var guests []models.Guest
	err := s.db.Scopes(access.ForWedding(weddingID)).
		Preload("Companions").
		Preload("Gift").
		Order("created_at ASC").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	return stats.FilterGuests(guests, filter), nil
}

func (s *GuestService) Create(weddingID uuid.UUID, req *dto.CreateGuestRequest) (*models.Guest, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first name is required", ErrInvalidGuest)
	}
	if !req.Side.Valid() {
		return nil, fmt.Errorf("%w: side must be bride or groom", ErrInvalidGuest)
	}
	attendance := req.Attendance
	if attendance == "" {
		attendance = models.AttendancePending
	}
	if !attendance.Valid() {
		return nil, fmt.Errorf("%w: attendance must be yes, no or pending", ErrInvalidGuest)
	}
	if req.Gift != nil && !req.Gift.Type.Valid() {
		return nil, fmt.Errorf("%w: gift type must be money or other", ErrInvalidGuest)
	}

	guest := models.Guest{
		ID:         uuid.New(),
		FirstName:  firstName,
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      req.Phone,
		Attendance: attendance,
		Side:       req.Side,
		GroupID:    req.GroupID,
		Notes:      req.Notes,
		WeddingID:  weddingID,
	}
	for _, c := range req.Companions {
		guest.Companions = append(guest.Companions, models.Companion{
			ID:        uuid.New(),
			FirstName: strings.TrimSpace(c.FirstName),
			LastName:  strings.TrimSpace(c.LastName),
			IsAdult:   c.IsAdult,
			GuestID:   guest.ID,
		})
	}
	if req.Gift != nil {
		guest.Gift = &models.Gift{
			ID:          uuid.New(),
			Type:        req.Gift.Type,
			Amount:      req.Gift.Amount,
			Description: req.Gift.Description,
			GuestID:     guest.ID,
		}
	}

	if err := s.db.Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

// Update applies a partial edit. A companions list, when present, replaces
// the existing list wholesale; the gift is likewise replaced or removed.
func (s *GuestService) Update(weddingID, guestID uuid.UUID, req *dto.UpdateGuestRequest) (*models.Guest, error) {
	if req.GroupID != nil && req.Ungroup {
		return nil, fmt.Errorf("%w: cannot set a group and ungroup at once", ErrInvalidGuest)
	}

	var guest models.Guest
	err := s.db.Scopes(access.ForWedding(weddingID)).First(&guest, "id = ?", guestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrInvalidGuest)
		}
		updates["first_name"] = name
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.Attendance != nil {
		if !req.Attendance.Valid() {
			return nil, fmt.Errorf("%w: attendance must be yes, no or pending", ErrInvalidGuest)
		}
		updates["attendance"] = *req.Attendance
	}
	if req.Side != nil {
		if !req.Side.Valid() {
			return nil, fmt.Errorf("%w: side must be bride or groom", ErrInvalidGuest)
		}
		updates["side"] = *req.Side
	}
	if req.Notes != nil {
		updates["notes"] = req.Notes
	}
	if req.GroupID != nil {
		// Group references are not validated here; referential integrity
		// stays with the datastore.
		updates["group_id"] = *req.GroupID
	}
	if req.Ungroup {
		updates["group_id"] = nil
	}
	if req.Gift != nil && !req.Gift.Type.Valid() {
		return nil, fmt.Errorf("%w: gift type must be money or other", ErrInvalidGuest)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&guest).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Companions != nil {
			if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Companion{}).Error; err != nil {
				return err
			}
			for _, c := range *req.Companions {
				companion := models.Companion{
					ID:        uuid.New(),
					FirstName: strings.TrimSpace(c.FirstName),
					LastName:  strings.TrimSpace(c.LastName),
					IsAdult:   c.IsAdult,
					GuestID:   guest.ID,
				}
				if err := tx.Create(&companion).Error; err != nil {
					return err
				}
			}
		}
		if req.RemoveGift || req.Gift != nil {
			if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Gift{}).Error; err != nil {
				return err
			}
		}
		if req.Gift != nil {
			gift := models.Gift{
				ID:          uuid.New(),
				Type:        req.Gift.Type,
				Amount:      req.Gift.Amount,
				Description: req.Gift.Description,
				GuestID:     guest.ID,
			}
			if err := tx.Create(&gift).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}

	var fresh models.Guest
	if err := s.db.Preload("Companions").Preload("Gift").First(&fresh, "id = ?", guest.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *GuestService) Delete(weddingID, guestID uuid.UUID) error {
	var guest models.Guest
	err := s.db.Scopes(access.ForWedding(weddingID)).First(&guest, "id = ?", guestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGuestNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Companion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Gift{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guest).Error
	})
}
