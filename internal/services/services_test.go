package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/config"
	"github.com/weddlist/backend/internal/database"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/queue"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		LoginTokenExpiry: time.Hour,
	}
}

// captureEnqueuer records queued mail jobs instead of touching Redis.
type captureEnqueuer struct {
	invites []queue.InviteEmailPayload
	magic   []queue.MagicLinkEmailPayload
	fail    bool
}

func (c *captureEnqueuer) EnqueueInviteEmail(_ context.Context, p queue.InviteEmailPayload) error {
	if c.fail {
		return errors.New("queue unavailable")
	}
	c.invites = append(c.invites, p)
	return nil
}

func (c *captureEnqueuer) EnqueueMagicLinkEmail(_ context.Context, p queue.MagicLinkEmailPayload) error {
	if c.fail {
		return errors.New("queue unavailable")
	}
	c.magic = append(c.magic, p)
	return nil
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		HasPassword:  true,
		AuthProvider: "email",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createWedding(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Wedding {
	t.Helper()
	wedding := models.Wedding{
		ID:             uuid.New(),
		UserID:         userID,
		BrideName:      "Ana",
		GroomName:      "Petar",
		Date:           "2026-06-20",
		VenueName:      "Grand Hall",
		VenueAddress:   "Main Street 1",
		VenueHall:      "Ballroom",
		PricePerPerson: 100,
		InviteCode:     uuid.New().String()[:12],
	}
	if err := db.Create(&wedding).Error; err != nil {
		t.Fatalf("failed to create wedding: %v", err)
	}
	return &wedding
}

func weddingRequest() *dto.WeddingRequest {
	return &dto.WeddingRequest{
		BrideName: "Ana",
		GroomName: "Petar",
		Date:      "2026-06-20",
		Venue: dto.Venue{
			Name:    "Grand Hall",
			Address: "Main Street 1",
			Hall:    "Ballroom",
		},
		PricePerPerson: 100,
	}
}
