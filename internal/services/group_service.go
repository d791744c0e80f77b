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
	ErrGroupNotFound = errors.New("group not found")
	ErrInvalidGroup  = errors.New("invalid group details")
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) List(weddingID uuid.UUID) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Scopes(access.ForWedding(weddingID)).
		Order("created_at ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Create(weddingID uuid.UUID, req *dto.CreateGroupRequest) (*models.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidGroup)
	}
	if !req.Side.Valid() {
		return nil, fmt.Errorf("%w: side must be bride or groom", ErrInvalidGroup)
	}

	group := models.Group{
		ID:        uuid.New(),
		Name:      name,
		Side:      req.Side,
		WeddingID: weddingID,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

func (s *GroupService) Update(weddingID, groupID uuid.UUID, req *dto.UpdateGroupRequest) (*models.Group, error) {
	var group models.Group
	err := s.db.Scopes(access.ForWedding(weddingID)).First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidGroup)
		}
		updates["name"] = name
	}
	if req.Side != nil {
		if !req.Side.Valid() {
			return nil, fmt.Errorf("%w: side must be bride or groom", ErrInvalidGroup)
		}
		updates["side"] = *req.Side
	}

	if len(updates) > 0 {
		if err := s.db.Model(&group).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update group: %w", err)
		}
	}
	return &group, nil
}

// Delete removes the group and moves its guests to the ungrouped bucket in
// the same transaction. Guests are never deleted with their group.
func (s *GroupService) Delete(weddingID, groupID uuid.UUID) error {
	var group models.Group
	err := s.db.Scopes(access.ForWedding(weddingID)).First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGroupNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Guest{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

// ListWithStats returns each group with its totals under the given filter.
// With an active filter, groups whose filtered guest set is empty are
// dropped; without one, empty groups still appear with zero stats.
func (s *GroupService) ListWithStats(weddingID uuid.UUID, filter stats.Filter) ([]dto.GroupWithStats, error) {
	groups, err := s.List(weddingID)
	if err != nil {
		return nil, err
	}

	var guests []models.Guest
	err = s.db.Scopes(access.ForWedding(weddingID)).
		Preload("Companions").
		Preload("Gift").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	guests = stats.FilterGuests(guests, filter)

	byGroup := make(map[uuid.UUID][]models.Guest)
	for _, g := range guests {
		if g.GroupID != nil {
			byGroup[*g.GroupID] = append(byGroup[*g.GroupID], g)
		}
	}

	out := make([]dto.GroupWithStats, 0, len(groups))
	for _, group := range groups {
		members := byGroup[group.ID]
		if filter.Active() && len(members) == 0 {
			continue
		}
		out = append(out, dto.GroupWithStats{
			ID:    group.ID,
			Name:  group.Name,
			Side:  group.Side,
			Stats: stats.ComputeGroup(members),
		})
	}
	return out, nil
}
