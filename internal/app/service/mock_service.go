package service

import (
	"context"
	"log"

	"adoptme/internal/app/mocks"
	"adoptme/internal/common"
	"adoptme/internal/domain/model"
	"adoptme/internal/domain/repository"
)

// Upper bound on a single seeding request, per collection.
const maxMockQty = 10000

type MockService struct {
	userRepo repository.UserRepository
	petRepo  repository.PetRepository
}

func NewMockService(userRepo repository.UserRepository, petRepo repository.PetRepository) *MockService {
	return &MockService{userRepo: userRepo, petRepo: petRepo}
}

type GenerateDataResult struct {
	UsersCreated int `json:"usersCreated"`
	PetsCreated  int `json:"petsCreated"`
}

// GenerateUsers returns synthetic users without persisting them.
func (s *MockService) GenerateUsers(qty int) ([]*model.User, error) {
	return mocks.GenerateUsers(qty)
}

// GeneratePets returns synthetic pets without persisting them.
func (s *MockService) GeneratePets(qty int) []*model.Pet {
	return mocks.GeneratePets(qty)
}

// GenerateAndPersist seeds both collections. The two batch inserts are
// sequential and non-transactional: a failure partway leaves the
// collections inconsistent, which is acceptable for a test-data
// utility but is why this must never back the adoption path.
func (s *MockService) GenerateAndPersist(ctx context.Context, usersQty, petsQty int) (*GenerateDataResult, error) {
	if usersQty < 0 || petsQty < 0 || usersQty > maxMockQty || petsQty > maxMockQty {
		return nil, common.ErrInvalidDataType
	}

	users, err := mocks.GenerateUsers(usersQty)
	if err != nil {
		return nil, common.Errorf("failed to generate users: %w", err)
	}
	pets := mocks.GeneratePets(petsQty)

	usersCreated, err := s.userRepo.InsertBatch(ctx, users)
	if err != nil {
		return nil, common.Errorf("failed to insert mock users: %w", err)
	}
	petsCreated, err := s.petRepo.InsertBatch(ctx, pets)
	if err != nil {
		return nil, common.Errorf("failed to insert mock pets: %w", err)
	}

	log.Printf("Mock data generated: %d users, %d pets", usersCreated, petsCreated)
	return &GenerateDataResult{UsersCreated: usersCreated, PetsCreated: petsCreated}, nil
}
