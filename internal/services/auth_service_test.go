package services

import (
	"context"
	"errors"
	"testing"

	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig(), &captureEnqueuer{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: " Ana@Example.com ", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.Email != "ana@example.com" {
		t.Errorf("email must be normalized, got %s", resp.User.Email)
	}
	if !resp.User.HasPassword {
		t.Error("registered accounts have a password")
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair")
	}

	if _, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "password1"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "password1"}); err != nil {
		t.Errorf("login failed: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig(), &captureEnqueuer{})

	if _, err := svc.Register(&dto.RegisterRequest{Email: "not-an-email", Password: "password1"}); err == nil {
		t.Error("expected error for invalid email")
	}
	if _, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "short"}); err == nil {
		t.Error("expected error for short password")
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig(), &captureEnqueuer{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	fresh, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.RefreshToken == resp.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// Redeeming the old token again must fail.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for reused token, got %v", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig(), &captureEnqueuer{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestRequestMagicLink_InvalidEmailIsSentinel(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig(), &captureEnqueuer{})

	err := svc.RequestMagicLink(context.Background(), "not-an-email", "code123")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestMagicLink_FullFlow(t *testing.T) {
	db := testDB(t)
	enq := &captureEnqueuer{}
	svc := NewAuthService(db, testConfig(), enq)
	ctx := context.Background()

	if err := svc.RequestMagicLink(ctx, "Guest@Example.com", "code123"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(enq.magic) != 1 {
		t.Fatalf("expected 1 queued mail, got %d", len(enq.magic))
	}
	mail := enq.magic[0]
	if mail.RecipientEmail != "guest@example.com" || mail.InviteCode != "code123" {
		t.Errorf("unexpected mail payload: %+v", mail)
	}

	// The raw token is only in the mail; the store holds a hash.
	var stored models.LoginToken
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("login token not stored: %v", err)
	}
	if stored.TokenHash == mail.Token {
		t.Error("login token must be stored hashed")
	}

	resp, err := svc.MagicLogin(&dto.MagicLoginRequest{Token: mail.Token})
	if err != nil {
		t.Fatalf("magic login failed: %v", err)
	}
	if resp.User.Email != "guest@example.com" {
		t.Errorf("expected account for guest@example.com, got %s", resp.User.Email)
	}
	if resp.User.HasPassword {
		t.Error("magic-link accounts start without a password")
	}

	// Single use.
	if _, err := svc.MagicLogin(&dto.MagicLoginRequest{Token: mail.Token}); !errors.Is(err, ErrInvalidLoginToken) {
		t.Errorf("expected ErrInvalidLoginToken on reuse, got %v", err)
	}
}

func TestMagicLogin_ExistingAccountIsReused(t *testing.T) {
	db := testDB(t)
	enq := &captureEnqueuer{}
	svc := NewAuthService(db, testConfig(), enq)
	ctx := context.Background()

	first, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.RequestMagicLink(ctx, "ana@example.com", ""); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp, err := svc.MagicLogin(&dto.MagicLoginRequest{Token: enq.magic[0].Token})
	if err != nil {
		t.Fatalf("magic login failed: %v", err)
	}
	if resp.User.ID != first.User.ID {
		t.Error("magic login must attach to the existing account")
	}
	if !resp.User.HasPassword {
		t.Error("existing password credential must survive magic login")
	}
}

func TestSetPassword_EnablesPasswordLogin(t *testing.T) {
	db := testDB(t)
	enq := &captureEnqueuer{}
	svc := NewAuthService(db, testConfig(), enq)
	ctx := context.Background()

	if err := svc.RequestMagicLink(ctx, "guest@example.com", ""); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp, err := svc.MagicLogin(&dto.MagicLoginRequest{Token: enq.magic[0].Token})
	if err != nil {
		t.Fatalf("magic login failed: %v", err)
	}

	// Password login is rejected until a password is set.
	if _, err := svc.Login(&dto.LoginRequest{Email: "guest@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials before set-password, got %v", err)
	}

	if err := svc.SetPassword(resp.User.ID, "short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := svc.SetPassword(resp.User.ID, "password1"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}

	after, err := svc.Login(&dto.LoginRequest{Email: "guest@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login after set-password failed: %v", err)
	}
	if !after.User.HasPassword {
		t.Error("has_password must flip after set-password")
	}
}
