package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/config"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/models"
	"github.com/weddlist/backend/internal/queue"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidLoginToken  = errors.New("invalid or expired sign-in link")
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db   *gorm.DB
	cfg  *config.Config
	mail queue.Enqueuer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mail queue.Enqueuer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mail: mail}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Password:     string(hash),
		HasPassword:  true,
		AuthProvider: "email",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	// Rotate: the old refresh token is dead the moment it is redeemed.
	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RequestMagicLink mints a single-use sign-in token and queues the email
// carrying it. Token creation and mail delivery are separate steps; a queue
// failure is reported but the token stays valid for a retried request.
func (s *AuthService) RequestMagicLink(ctx context.Context, email, inviteCode string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	rawToken, tokenHash, err := newOpaqueToken()
	if err != nil {
		return err
	}

	record := models.LoginToken{
		ID:         uuid.New(),
		Email:      email,
		TokenHash:  tokenHash,
		InviteCode: inviteCode,
		ExpiresAt:  time.Now().Add(s.cfg.LoginTokenExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store login token: %w", err)
	}

	return s.mail.EnqueueMagicLinkEmail(ctx, queue.MagicLinkEmailPayload{
		RecipientEmail: email,
		InviteCode:     inviteCode,
		Token:          rawToken,
	})
}

// MagicLogin consumes a magic-link token, creating the account on first use.
// Accounts created this way carry no password until SetPassword.
func (s *AuthService) MagicLogin(req *dto.MagicLoginRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.Token)

	var stored models.LoginToken
	if err := s.db.Where("token_hash = ? AND consumed = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidLoginToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidLoginToken
	}

	if err := s.db.Model(&stored).Update("consumed", true).Error; err != nil {
		return nil, fmt.Errorf("failed to consume login token: %w", err)
	}

	var user models.User
	err := s.db.Where("email = ?", stored.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:           uuid.New(),
			Email:        stored.Email,
			HasPassword:  false,
			AuthProvider: "magic_link",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	return s.generateTokenPair(&user)
}

// SetPassword gives a passwordless account a password credential.
func (s *AuthService) SetPassword(userID uuid.UUID, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password":     string(hash),
		"has_password": true,
	}).Error
}

// UserByID looks up an account by its id.
func (s *AuthService) UserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			HasPassword: user.HasPassword,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawToken, tokenHash, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func newOpaqueToken() (raw, hash string, err error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	raw = base64.URLEncoding.EncodeToString(rawBytes)
	return raw, hashToken(raw), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
