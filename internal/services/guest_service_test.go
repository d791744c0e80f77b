package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/stats"
)

func TestGuestCreate_DefaultsAndValidation(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	if _, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{FirstName: " ", Side: models.SideBride}); !errors.Is(err, ErrInvalidGuest) {
		t.Errorf("expected ErrInvalidGuest for blank name, got %v", err)
	}
	if _, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{FirstName: "Ivan", Side: "none"}); !errors.Is(err, ErrInvalidGuest) {
		t.Errorf("expected ErrInvalidGuest for bad side, got %v", err)
	}

	amount := 150.0
	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		LastName:  "Horvat",
		Side:      models.SideBride,
		Companions: []dto.CompanionInput{
			{FirstName: "Mia", IsAdult: false},
		},
		Gift: &dto.GiftInput{Type: models.GiftMoney, Amount: &amount},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if guest.Attendance != models.AttendancePending {
		t.Errorf("attendance should default to pending, got %s", guest.Attendance)
	}
	if len(guest.Companions) != 1 || guest.Gift == nil {
		t.Fatalf("expected companion and gift persisted: %+v", guest)
	}
}

func TestGuestCreate_ChildCompanionStaysChild(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		Side:      models.SideBride,
		Companions: []dto.CompanionInput{
			{FirstName: "Mia", IsAdult: false},
			{FirstName: "Luka", IsAdult: true},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Reload from the database: the adult flag must round-trip as written,
	// false included. Children are never billed, so a child silently
	// promoted to adult corrupts every cost figure downstream.
	var stored []models.Companion
	if err := db.Where("guest_id = ?", guest.ID).Order("first_name ASC").Find(&stored).Error; err != nil {
		t.Fatalf("failed to reload companions: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 companions, got %d", len(stored))
	}
	byName := map[string]bool{}
	for _, c := range stored {
		byName[c.FirstName] = c.IsAdult
	}
	if byName["Mia"] {
		t.Error("Mia was created as a child and must stay one after persistence")
	}
	if !byName["Luka"] {
		t.Error("Luka was created as an adult and must stay one after persistence")
	}

	var fresh models.Guest
	if err := db.Preload("Companions").First(&fresh, "id = ?", guest.ID).Error; err != nil {
		t.Fatalf("failed to reload guest: %v", err)
	}
	s := stats.Compute([]models.Guest{fresh}, 100)
	if s.TotalAdults != 2 || s.TotalChildren != 1 {
		t.Errorf("expected 2 adults and 1 child, got %+v", s)
	}
	if s.TotalCost != 200 {
		t.Errorf("children are not billed: expected cost 200, got %v", s.TotalCost)
	}
}

func TestGuestCreate_GroupReferenceNotValidated(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	// Group references are the caller's responsibility; integrity is the
	// datastore's concern, not this component's.
	dangling := uuid.New()
	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		Side:      models.SideBride,
		GroupID:   &dangling,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if guest.GroupID == nil || *guest.GroupID != dangling {
		t.Errorf("group reference should be stored as given, got %v", guest.GroupID)
	}
}

func TestGuestUpdate_UngroupAndGroupConflict(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())
	group := createGroup(t, db, wedding.ID, "Family", models.SideBride)

	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		Side:      models.SideBride,
		GroupID:   &group.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(wedding.ID, guest.ID, &dto.UpdateGuestRequest{GroupID: &group.ID, Ungroup: true}); !errors.Is(err, ErrInvalidGuest) {
		t.Errorf("expected ErrInvalidGuest for group+ungroup, got %v", err)
	}

	updated, err := svc.Update(wedding.ID, guest.ID, &dto.UpdateGuestRequest{Ungroup: true})
	if err != nil {
		t.Fatalf("ungroup failed: %v", err)
	}
	if updated.GroupID != nil {
		t.Error("guest should be ungrouped")
	}
}

func TestGuestUpdate_ReplacesCompanionsAndRemovesGift(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	amount := 50.0
	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		Side:      models.SideGroom,
		Companions: []dto.CompanionInput{
			{FirstName: "Mia", IsAdult: false},
			{FirstName: "Luka", IsAdult: true},
		},
		Gift: &dto.GiftInput{Type: models.GiftMoney, Amount: &amount},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	companions := []dto.CompanionInput{{FirstName: "Eva", IsAdult: true}}
	updated, err := svc.Update(wedding.ID, guest.ID, &dto.UpdateGuestRequest{
		Companions: &companions,
		RemoveGift: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Companions) != 1 || updated.Companions[0].FirstName != "Eva" {
		t.Errorf("companion list should be replaced wholesale: %+v", updated.Companions)
	}
	if updated.Gift != nil {
		t.Error("gift should be removed")
	}

	var orphans int64
	db.Model(&models.Companion{}).Where("guest_id = ?", guest.ID).Count(&orphans)
	if orphans != 1 {
		t.Errorf("expected 1 companion row, got %d", orphans)
	}
}

func TestGuestUpdate_ReplacesGift(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	desc := "vase"
	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName: "Ivan",
		Side:      models.SideGroom,
		Gift:      &dto.GiftInput{Type: models.GiftOther, Description: &desc},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	amount := 200.0
	updated, err := svc.Update(wedding.ID, guest.ID, &dto.UpdateGuestRequest{
		Gift: &dto.GiftInput{Type: models.GiftMoney, Amount: &amount},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Gift == nil || updated.Gift.Type != models.GiftMoney {
		t.Fatalf("gift should be replaced: %+v", updated.Gift)
	}

	var gifts int64
	db.Model(&models.Gift{}).Where("guest_id = ?", guest.ID).Count(&gifts)
	if gifts != 1 {
		t.Errorf("a guest holds at most one gift, got %d", gifts)
	}
}

func TestGuestDelete_RemovesDependents(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	amount := 10.0
	guest, err := svc.Create(wedding.ID, &dto.CreateGuestRequest{
		FirstName:  "Ivan",
		Side:       models.SideBride,
		Companions: []dto.CompanionInput{{FirstName: "Mia", IsAdult: false}},
		Gift:       &dto.GiftInput{Type: models.GiftMoney, Amount: &amount},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(wedding.ID, guest.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var companions, gifts int64
	db.Model(&models.Companion{}).Where("guest_id = ?", guest.ID).Count(&companions)
	db.Model(&models.Gift{}).Where("guest_id = ?", guest.ID).Count(&gifts)
	if companions != 0 || gifts != 0 {
		t.Errorf("dependents must go with the guest: companions=%d gifts=%d", companions, gifts)
	}
}

func TestGuestList_AppliesFilter(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)
	wedding := createWedding(t, db, uuid.New())

	for _, g := range []dto.CreateGuestRequest{
		{FirstName: "Ana", Side: models.SideBride, Attendance: models.AttendanceYes},
		{FirstName: "Petar", Side: models.SideGroom, Attendance: models.AttendanceNo},
		{FirstName: "Ivana", Side: models.SideBride, Attendance: models.AttendancePending},
	} {
		req := g
		if _, err := svc.Create(wedding.ID, &req); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	guests, err := svc.List(wedding.ID, stats.Filter{Side: "bride"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(guests) != 2 {
		t.Errorf("expected 2 bride-side guests, got %d", len(guests))
	}

	guests, err = svc.List(wedding.ID, stats.Filter{Search: "ana", Attendance: "yes"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(guests) != 1 || guests[0].FirstName != "Ana" {
		t.Errorf("expected only Ana, got %+v", guests)
	}
}
