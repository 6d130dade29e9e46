package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adoptme/internal/common"
	"adoptme/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePet(t *testing.T) {
	petRepo := newMockPetRepo()
	svc := NewPetService(petRepo)

	pet, err := svc.CreatePet(context.Background(), CreatePetRequest{
		Name:      "Luna",
		Specie:    "dog",
		BirthDate: "2021-06-15",
	})
	require.NoError(t, err)
	assert.False(t, pet.Adopted)
	assert.Nil(t, pet.Owner)
	assert.Equal(t, 2021, pet.BirthDate.Year())
	assert.Len(t, petRepo.pets, 1)
}

func TestCreatePetValidation(t *testing.T) {
	svc := NewPetService(newMockPetRepo())

	cases := map[string]CreatePetRequest{
		"missing name":      {Specie: "dog", BirthDate: "2021-06-15"},
		"missing specie":    {Name: "Luna", BirthDate: "2021-06-15"},
		"missing birthDate": {Name: "Luna", Specie: "dog"},
		"bad birthDate":     {Name: "Luna", Specie: "dog", BirthDate: "15/06/2021"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreatePet(context.Background(), req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func withTempImageDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	previous := config.AppConfig.PetImageDir
	config.AppConfig.PetImageDir = dir
	t.Cleanup(func() { config.AppConfig.PetImageDir = previous })
	return dir
}

func imageDirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestCreatePetWithImage(t *testing.T) {
	dir := withTempImageDir(t)
	petRepo := newMockPetRepo()
	svc := NewPetService(petRepo)

	pet, err := svc.CreatePetWithImage(context.Background(), CreatePetRequest{
		Name:      "Luna Mia",
		Specie:    "cat",
		BirthDate: "2021-06-15",
	}, "photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Len(t, petRepo.pets, 1)

	entries := imageDirEntries(t, dir)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "luna-mia-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".png"))
	assert.Equal(t, filepath.Join(dir, entries[0].Name()), pet.Image)

	stored, err := os.ReadFile(pet.Image)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))
}

func TestCreatePetWithImageRequiresFile(t *testing.T) {
	withTempImageDir(t)
	svc := NewPetService(newMockPetRepo())

	_, err := svc.CreatePetWithImage(context.Background(), CreatePetRequest{
		Name:      "Luna",
		Specie:    "cat",
		BirthDate: "2021-06-15",
	}, "", nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreatePetWithImageBadDateLeavesNoFile(t *testing.T) {
	dir := withTempImageDir(t)
	petRepo := newMockPetRepo()
	svc := NewPetService(petRepo)

	_, err := svc.CreatePetWithImage(context.Background(), CreatePetRequest{
		Name:      "Luna",
		Specie:    "cat",
		BirthDate: "15/06/2021",
	}, "photo.png", strings.NewReader("png-bytes"))
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, petRepo.pets)
	assert.Empty(t, imageDirEntries(t, dir))
}

func TestCreatePetWithImageRemovesFileWhenCreateFails(t *testing.T) {
	dir := withTempImageDir(t)
	petRepo := newMockPetRepo()
	petRepo.createErr = errors.New("insert failed")
	svc := NewPetService(petRepo)

	_, err := svc.CreatePetWithImage(context.Background(), CreatePetRequest{
		Name:      "Luna",
		Specie:    "cat",
		BirthDate: "2021-06-15",
	}, "photo.png", strings.NewReader("png-bytes"))
	require.Error(t, err)
	assert.Empty(t, imageDirEntries(t, dir))
}

func TestUpdatePet(t *testing.T) {
	petRepo := newMockPetRepo()
	svc := NewPetService(petRepo)

	pet, err := svc.CreatePet(context.Background(), CreatePetRequest{Name: "Luna", Specie: "dog", BirthDate: "2021-06-15"})
	require.NoError(t, err)

	name := "Nala"
	require.NoError(t, svc.UpdatePet(context.Background(), pet.ID, UpdatePetRequest{Name: &name}))
	assert.Equal(t, "Nala", petRepo.pets[pet.ID].Name)

	err = svc.UpdatePet(context.Background(), "missing", UpdatePetRequest{Name: &name})
	assert.Equal(t, "PET_NOT_FOUND", common.ErrorKind(err))
}

func TestDeletePet(t *testing.T) {
	petRepo := newMockPetRepo()
	svc := NewPetService(petRepo)

	pet, err := svc.CreatePet(context.Background(), CreatePetRequest{Name: "Luna", Specie: "dog", BirthDate: "2021-06-15"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePet(context.Background(), pet.ID))
	assert.Empty(t, petRepo.pets)

	err = svc.DeletePet(context.Background(), pet.ID)
	assert.Equal(t, "PET_NOT_FOUND", common.ErrorKind(err))
}
