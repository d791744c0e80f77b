package dto

import (
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/stats"
)

type CreateGroupRequest struct {
	Name string      `json:"name"`
	Side models.Side `json:"side"`
}

type UpdateGroupRequest struct {
	Name *string      `json:"name"`
	Side *models.Side `json:"side"`
}

// GroupWithStats embeds per-group totals next to the group itself, the shape
// the dashboard group list renders.
type GroupWithStats struct {
	ID    uuid.UUID        `json:"id"`
	Name  string           `json:"name"`
	Side  models.Side      `json:"side"`
	Stats stats.GroupStats `json:"stats"`
}
