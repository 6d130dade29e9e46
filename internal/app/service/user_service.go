package service

import (
	"context"
	"errors"
	"log"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"
	"adoptme/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	// Password updates are rejected here; changing it requires the
	// dedicated credential flow.
	Password *string `json:"password,omitempty"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, common.Errorf("user id is required: %w", common.ErrValidation)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) error {
	if userID == "" {
		return common.Errorf("user id is required: %w", common.ErrValidation)
	}
	if req.FirstName == nil && req.LastName == nil && req.Email == nil && req.Role == nil && req.Password == nil {
		return common.Errorf("update data is required: %w", common.ErrValidation)
	}
	if req.Password != nil {
		return common.Errorf("password cannot be changed through this endpoint: %w", common.ErrValidation)
	}
	if req.Role != nil && *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
		return common.Errorf("role must be one of user, admin: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return common.Errorf("failed to load user %s: %w", userID, err)
	}

	if req.Email != nil && *req.Email != user.Email {
		_, err := s.userRepo.FindByEmail(ctx, *req.Email)
		if err == nil {
			return common.Errorf("email already in use: %w", common.ErrConflict)
		}
		if !errors.Is(err, common.ErrNotFound) {
			return common.Errorf("failed to check email: %w", err)
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return common.Errorf("failed to update user %s: %w", userID, err)
	}
	log.Printf("User updated: %s", userID)
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return common.Errorf("user id is required: %w", common.ErrValidation)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return common.Errorf("failed to delete user %s: %w", userID, err)
	}
	log.Printf("User deleted: %s", userID)
	return nil
}
