package service

import (
	"context"
	"testing"
	"time"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdoptionFixture(t *testing.T) (*AdoptionService, *mockUserRepo, *mockPetRepo, *mockAdoptionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := newMockUserRepo()
	petRepo := newMockPetRepo()
	adoptionRepo := newMockAdoptionRepo()
	svc := NewAdoptionService(adoptionRepo, userRepo, petRepo, db)
	return svc, userRepo, petRepo, adoptionRepo, mock
}

func seedUserAndPet(userRepo *mockUserRepo, petRepo *mockPetRepo) (*model.User, *model.Pet) {
	user := &model.User{ID: "u1", FirstName: "Ana", LastName: "Garcia", Email: "ana@example.com", Role: model.RoleUser, Pets: []string{}}
	pet := &model.Pet{ID: "p1", Name: "Luna", Specie: "dog", BirthDate: time.Now().AddDate(-3, 0, 0)}
	userRepo.add(user)
	petRepo.pets[pet.ID] = pet
	return user, pet
}

func TestCreateAdoptionHappyPath(t *testing.T) {
	svc, userRepo, petRepo, adoptionRepo, mock := newAdoptionFixture(t)
	user, pet := seedUserAndPet(userRepo, petRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	adoption, err := svc.CreateAdoption(context.Background(), user.ID, pet.ID)
	require.NoError(t, err)
	require.NotNil(t, adoption)

	assert.Equal(t, user.ID, adoption.Owner)
	assert.Equal(t, pet.ID, adoption.Pet)
	assert.True(t, pet.Adopted)
	require.NotNil(t, pet.Owner)
	assert.Equal(t, user.ID, *pet.Owner)
	assert.Contains(t, user.Pets, pet.ID)
	assert.Len(t, adoptionRepo.adoptions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdoptionRequiresIDs(t *testing.T) {
	svc, _, _, _, _ := newAdoptionFixture(t)

	_, err := svc.CreateAdoption(context.Background(), "", "p1")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreateAdoption(context.Background(), "u1", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateAdoptionUserNotFound(t *testing.T) {
	svc, userRepo, petRepo, _, _ := newAdoptionFixture(t)
	_, pet := seedUserAndPet(userRepo, petRepo)

	_, err := svc.CreateAdoption(context.Background(), "missing", pet.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "USER_NOT_FOUND", common.ErrorKind(err))
	assert.False(t, pet.Adopted)
}

func TestCreateAdoptionPetNotFound(t *testing.T) {
	svc, userRepo, petRepo, _, _ := newAdoptionFixture(t)
	user, _ := seedUserAndPet(userRepo, petRepo)

	_, err := svc.CreateAdoption(context.Background(), user.ID, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "PET_NOT_FOUND", common.ErrorKind(err))
	assert.Empty(t, user.Pets)
}

func TestCreateAdoptionPetAlreadyAdopted(t *testing.T) {
	svc, userRepo, petRepo, adoptionRepo, _ := newAdoptionFixture(t)
	user, pet := seedUserAndPet(userRepo, petRepo)
	owner := "someone-else"
	pet.Adopted = true
	pet.Owner = &owner

	_, err := svc.CreateAdoption(context.Background(), user.ID, pet.ID)
	assert.ErrorIs(t, err, common.ErrBusinessRule)
	assert.Equal(t, "PET_ALREADY_ADOPTED", common.ErrorKind(err))

	// No writes happened: the precondition failed before any transaction.
	assert.Zero(t, petRepo.markAdoptedCalls)
	assert.Zero(t, userRepo.appendPetCalls)
	assert.Empty(t, user.Pets)
	assert.Empty(t, adoptionRepo.adoptions)
}

// A concurrent adoption can slip between the precondition read and the
// write. The conditional update reports it and the transaction rolls
// back without touching the user.
func TestCreateAdoptionLosesRace(t *testing.T) {
	svc, userRepo, petRepo, adoptionRepo, mock := newAdoptionFixture(t)
	user, pet := seedUserAndPet(userRepo, petRepo)
	petRepo.markAdoptedErr = common.ErrPetAlreadyAdopted

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CreateAdoption(context.Background(), user.ID, pet.ID)
	assert.Equal(t, "PET_ALREADY_ADOPTED", common.ErrorKind(err))
	assert.Zero(t, userRepo.appendPetCalls)
	assert.Empty(t, adoptionRepo.adoptions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdoption(t *testing.T) {
	svc, _, _, adoptionRepo, _ := newAdoptionFixture(t)
	adoption := &model.Adoption{ID: "a1", Owner: "u1", Pet: "p1", Date: time.Now()}
	adoptionRepo.adoptions[adoption.ID] = adoption

	got, err := svc.GetAdoption(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, adoption.ID, got.ID)

	_, err = svc.GetAdoption(context.Background(), "nope")
	assert.Equal(t, "ADOPTION_NOT_FOUND", common.ErrorKind(err))

	_, err = svc.GetAdoption(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrValidation)
}
