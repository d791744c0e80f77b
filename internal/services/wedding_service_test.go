package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/cache"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
)

func TestSetup_GeneratesInviteCodeAndRejectsSecond(t *testing.T) {
	db := testDB(t)
	meta := cache.NewMemory()
	svc := NewWeddingService(db, meta)
	owner := createUser(t, db, "owner@example.com")
	ctx := context.Background()

	wedding, err := svc.Setup(ctx, owner.ID, weddingRequest())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if wedding.InviteCode == "" {
		t.Error("expected a generated invite code")
	}
	if id, ok, _ := meta.WeddingID(ctx, owner.ID); !ok || id != wedding.ID {
		t.Error("setup must set the owner's wedding pointer")
	}

	if _, err := svc.Setup(ctx, owner.ID, weddingRequest()); !errors.Is(err, ErrWeddingExists) {
		t.Errorf("expected ErrWeddingExists, got %v", err)
	}
}

func TestSetup_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewWeddingService(db, cache.NewMemory())
	owner := createUser(t, db, "owner@example.com")

	tests := []struct {
		name   string
		mutate func(r *dto.WeddingRequest)
	}{
		{"short bride name", func(r *dto.WeddingRequest) { r.BrideName = "A" }},
		{"short groom name", func(r *dto.WeddingRequest) { r.GroomName = " P " }},
		{"missing date", func(r *dto.WeddingRequest) { r.Date = "  " }},
		{"short venue name", func(r *dto.WeddingRequest) { r.Venue.Name = "X" }},
		{"short address", func(r *dto.WeddingRequest) { r.Venue.Address = "abc" }},
		{"negative price", func(r *dto.WeddingRequest) { r.PricePerPerson = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := weddingRequest()
			tt.mutate(req)
			if _, err := svc.Setup(context.Background(), owner.ID, req); !errors.Is(err, ErrInvalidWedding) {
				t.Errorf("expected ErrInvalidWedding, got %v", err)
			}
		})
	}
}

func TestResolveForUser_OwnerWins(t *testing.T) {
	db := testDB(t)
	meta := cache.NewMemory()
	svc := NewWeddingService(db, meta)
	ctx := context.Background()

	owner := createUser(t, db, "owner@example.com")
	own := createWedding(t, db, owner.ID)

	// Even with a pointer to someone else's wedding, ownership wins.
	other := createWedding(t, db, uuid.New())
	if err := meta.SetWeddingID(ctx, owner.ID, other.ID); err != nil {
		t.Fatalf("failed to set pointer: %v", err)
	}

	acc, err := svc.ResolveForUser(ctx, owner.ID, owner.Email)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if acc.Role != RoleOwner {
		t.Errorf("expected owner role, got %s", acc.Role)
	}
	if acc.Wedding.ID != own.ID {
		t.Errorf("expected owned wedding %s, got %s", own.ID, acc.Wedding.ID)
	}
}

func TestResolveForUser_PointerThenCollaboratorThenNone(t *testing.T) {
	db := testDB(t)
	meta := cache.NewMemory()
	svc := NewWeddingService(db, meta)
	ctx := context.Background()

	guest := createUser(t, db, "helper@example.com")
	wedding := createWedding(t, db, uuid.New())

	// No pointer, no membership: nothing to resolve.
	if _, err := svc.ResolveForUser(ctx, guest.ID, guest.Email); !errors.Is(err, ErrNoWedding) {
		t.Fatalf("expected ErrNoWedding, got %v", err)
	}

	// Membership row alone is enough.
	collab := models.Collaborator{ID: uuid.New(), WeddingID: wedding.ID, Email: guest.Email}
	if err := db.Create(&collab).Error; err != nil {
		t.Fatalf("failed to create collaborator: %v", err)
	}
	acc, err := svc.ResolveForUser(ctx, guest.ID, guest.Email)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if acc.Role != RoleCollaborator || acc.Wedding.ID != wedding.ID {
		t.Errorf("expected collaborator on %s, got role=%s wedding=%s", wedding.ID, acc.Role, acc.Wedding.ID)
	}

	// A stale pointer to a deleted wedding falls through to membership.
	if err := meta.SetWeddingID(ctx, guest.ID, uuid.New()); err != nil {
		t.Fatalf("failed to set pointer: %v", err)
	}
	acc, err = svc.ResolveForUser(ctx, guest.ID, guest.Email)
	if err != nil {
		t.Fatalf("resolve with stale pointer failed: %v", err)
	}
	if acc.Wedding.ID != wedding.ID {
		t.Errorf("stale pointer should fall through to membership, got %s", acc.Wedding.ID)
	}
}

func TestUpdate_CollaboratorForbidden(t *testing.T) {
	db := testDB(t)
	meta := cache.NewMemory()
	svc := NewWeddingService(db, meta)
	ctx := context.Background()

	owner := createUser(t, db, "owner@example.com")
	wedding := createWedding(t, db, owner.ID)

	helper := createUser(t, db, "helper@example.com")
	collab := models.Collaborator{ID: uuid.New(), WeddingID: wedding.ID, Email: helper.Email}
	if err := db.Create(&collab).Error; err != nil {
		t.Fatalf("failed to create collaborator: %v", err)
	}

	if _, err := svc.Update(ctx, helper.ID, helper.Email, weddingRequest()); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	req := weddingRequest()
	req.BrideName = "Marija"
	updated, err := svc.Update(ctx, owner.ID, owner.Email, req)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.InviteCode != wedding.InviteCode {
		t.Error("invite code must never change on update")
	}

	var fresh models.Wedding
	if err := db.First(&fresh, "id = ?", wedding.ID).Error; err != nil {
		t.Fatalf("failed to reload wedding: %v", err)
	}
	if fresh.BrideName != "Marija" {
		t.Errorf("expected updated bride name, got %s", fresh.BrideName)
	}
}
