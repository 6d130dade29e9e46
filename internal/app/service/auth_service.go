package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"adoptme/internal/common"
	"adoptme/internal/common/security"
	"adoptme/internal/domain/model"
	"adoptme/internal/domain/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RevocationStore records logged-out tokens until their natural expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	userRepo    repository.UserRepository
	revocations RevocationStore
}

func NewAuthService(userRepo repository.UserRepository, revocations RevocationStore) *AuthService {
	return &AuthService{userRepo: userRepo, revocations: revocations}
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user account and returns the new user's id.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return "", common.Errorf("all fields are required: first_name, last_name, email, password: %w", common.ErrValidation)
	}
	if !emailRegex.MatchString(req.Email) {
		return "", common.Errorf("invalid email format: %w", common.ErrValidation)
	}

	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return "", common.Errorf("user already exists: %w", common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", common.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return "", common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
		Pets:           []string{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on the unique email index
		return "", common.Errorf("failed to create user: %w", err)
	}

	log.Printf("User registered: %s (%s)", user.Email, user.ID)
	return user.ID, nil
}

// Login verifies credentials and issues the safe session token with a
// minimal user projection. Unknown email and wrong password fail the
// same way so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.loginUser(ctx, req)
	if err != nil {
		return "", err
	}

	token, err := security.GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", common.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// LegacyLogin issues the legacy token that embeds the entire stored
// user record, hashed password included. Kept only for compatibility
// with existing clients; new integrations should use Login.
func (s *AuthService) LegacyLogin(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.loginUser(ctx, req)
	if err != nil {
		return "", err
	}

	record := map[string]interface{}{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"password":   user.HashedPassword,
		"role":       user.Role,
		"pets":       user.Pets,
	}
	token, err := security.GenerateLegacyToken(record)
	if err != nil {
		return "", common.Errorf("failed to generate legacy token: %w", err)
	}
	return token, nil
}

func (s *AuthService) loginUser(ctx context.Context, req LoginRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentSession validates an already-verified token's claims against
// the revocation store and returns them as the session payload.
func (s *AuthService) CurrentSession(ctx context.Context, claims jwt.MapClaims) (jwt.MapClaims, error) {
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		return nil, common.Errorf("invalid or expired token: %w", common.ErrUnauthorized)
	}
	revoked, err := s.revocations.IsRevoked(ctx, tokenID)
	if err != nil {
		return nil, common.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, common.Errorf("invalid or expired token: %w", common.ErrUnauthorized)
	}
	return claims, nil
}

// Logout revokes the presented token for its remaining lifetime. It
// never fails the request: a missing or garbled cookie still logs the
// client out on their side once the handler clears it.
func (s *AuthService) Logout(ctx context.Context, tokenString string) {
	if tokenString == "" {
		return
	}
	claims, err := security.VerifyToken(tokenString)
	if err != nil {
		return
	}
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		return
	}
	expiry, err := security.GetExpiryFromClaims(claims)
	if err != nil {
		return
	}
	if err := s.revocations.Revoke(ctx, tokenID, time.Until(expiry)); err != nil {
		log.Printf("ERROR: Failed to revoke token %s: %v", tokenID, err)
	}
}
