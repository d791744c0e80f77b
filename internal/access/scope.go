package access

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForWedding returns a GORM scope that filters rows by wedding_id.
func ForWedding(weddingID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("wedding_id = ?", weddingID)
	}
}
