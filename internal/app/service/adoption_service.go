package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"
	"adoptme/internal/domain/repository"

	"github.com/google/uuid"
)

type AdoptionService struct {
	adoptionRepo repository.AdoptionRepository
	userRepo     repository.UserRepository
	petRepo      repository.PetRepository
	db           *sql.DB // For transactions
}

func NewAdoptionService(
	adoptionRepo repository.AdoptionRepository,
	userRepo repository.UserRepository,
	petRepo repository.PetRepository,
	db *sql.DB,
) *AdoptionService {
	return &AdoptionService{
		adoptionRepo: adoptionRepo,
		userRepo:     userRepo,
		petRepo:      petRepo,
		db:           db,
	}
}

// CreateAdoption checks the preconditions in order (user exists, pet
// exists, pet not adopted) and then performs the three writes in one
// transaction: append the pet to the user's list, flip the pet's
// adopted flag, insert the adoption record. The flip is a conditional
// update, so a concurrent adoption of the same pet loses with
// PET_ALREADY_ADOPTED instead of double-adopting.
func (s *AdoptionService) CreateAdoption(ctx context.Context, userID, petID string) (*model.Adoption, error) {
	if userID == "" || petID == "" {
		return nil, common.Errorf("user id and pet id are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.Errorf("failed to load user %s: %w", userID, err)
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrPetNotFound
		}
		return nil, common.Errorf("failed to load pet %s: %w", petID, err)
	}

	if pet.Adopted {
		return nil, common.ErrPetAlreadyAdopted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.petRepo.MarkAdopted(ctx, tx, pet.ID, user.ID); err != nil {
		return nil, err
	}

	if err := s.userRepo.AppendPet(ctx, tx, user.ID, pet.ID); err != nil {
		return nil, common.Errorf("failed to append pet to user: %w", err)
	}

	adoption := &model.Adoption{
		ID:    uuid.NewString(),
		Owner: user.ID,
		Pet:   pet.ID,
		Date:  time.Now(),
	}
	if err := s.adoptionRepo.Create(ctx, tx, adoption); err != nil {
		return nil, common.Errorf("failed to create adoption record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Adoption %s created: user %s adopted pet %s", adoption.ID, user.ID, pet.ID)
	return adoption, nil
}

func (s *AdoptionService) ListAdoptions(ctx context.Context) ([]model.Adoption, error) {
	return s.adoptionRepo.FindAll(ctx)
}

func (s *AdoptionService) GetAdoption(ctx context.Context, adoptionID string) (*model.Adoption, error) {
	if adoptionID == "" {
		return nil, common.Errorf("adoption id is required: %w", common.ErrValidation)
	}
	adoption, err := s.adoptionRepo.FindByID(ctx, adoptionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrAdoptionNotFound
		}
		return nil, common.Errorf("failed to load adoption %s: %w", adoptionID, err)
	}
	return adoption, nil
}
