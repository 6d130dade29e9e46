package service

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"
	"adoptme/internal/domain/repository"
	"adoptme/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const birthDateLayout = "2006-01-02"

type PetService struct {
	petRepo repository.PetRepository
}

func NewPetService(petRepo repository.PetRepository) *PetService {
	return &PetService{petRepo: petRepo}
}

type CreatePetRequest struct {
	Name      string `json:"name"`
	Specie    string `json:"specie"`
	BirthDate string `json:"birthDate"`
	Image     string `json:"image,omitempty"`
}

type UpdatePetRequest struct {
	Name      *string `json:"name,omitempty"`
	Specie    *string `json:"specie,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Image     *string `json:"image,omitempty"`
}

func (s *PetService) ListPets(ctx context.Context) ([]model.Pet, error) {
	return s.petRepo.FindAll(ctx)
}

func (s *PetService) CreatePet(ctx context.Context, req CreatePetRequest) (*model.Pet, error) {
	if req.Name == "" || req.Specie == "" || req.BirthDate == "" {
		return nil, common.Errorf("name, specie and birthDate are required: %w", common.ErrValidation)
	}
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, common.Errorf("birthDate must use the YYYY-MM-DD format: %w", common.ErrValidation)
	}

	pet := &model.Pet{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Specie:    req.Specie,
		BirthDate: birthDate,
		Image:     req.Image,
		Adopted:   false,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, common.Errorf("failed to create pet: %w", err)
	}
	log.Printf("Pet created: %s (%s)", pet.Name, pet.ID)
	return pet, nil
}

// CreatePetWithImage stores the uploaded file under the configured
// image directory and records its path on the pet.
func (s *PetService) CreatePetWithImage(ctx context.Context, req CreatePetRequest, filename string, file io.Reader) (*model.Pet, error) {
	if req.Name == "" || req.Specie == "" || req.BirthDate == "" {
		return nil, common.Errorf("name, specie and birthDate are required: %w", common.ErrValidation)
	}
	if file == nil || filename == "" {
		return nil, common.Errorf("image file is required: %w", common.ErrValidation)
	}
	// Reject a malformed date before the upload touches disk, so a
	// failed request leaves nothing behind in the image directory.
	if _, err := time.Parse(birthDateLayout, req.BirthDate); err != nil {
		return nil, common.Errorf("birthDate must use the YYYY-MM-DD format: %w", common.ErrValidation)
	}

	imagePath, err := s.saveImage(req.Name, filename, file)
	if err != nil {
		return nil, common.Errorf("failed to store pet image: %w", err)
	}

	req.Image = imagePath
	pet, err := s.CreatePet(ctx, req)
	if err != nil {
		os.Remove(imagePath)
		return nil, err
	}
	return pet, nil
}

func (s *PetService) saveImage(petName, filename string, file io.Reader) (string, error) {
	dir := config.AppConfig.PetImageDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Slugified pet name plus a short unique suffix keeps filenames
	// readable without collisions.
	target := slug.Make(petName) + "-" + uuid.NewString()[:8] + filepath.Ext(filename)
	path := filepath.Join(dir, target)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *PetService) UpdatePet(ctx context.Context, petID string, req UpdatePetRequest) error {
	if petID == "" {
		return common.Errorf("pet id is required: %w", common.ErrValidation)
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrPetNotFound
		}
		return common.Errorf("failed to load pet %s: %w", petID, err)
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Specie != nil {
		pet.Specie = *req.Specie
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			return common.Errorf("birthDate must use the YYYY-MM-DD format: %w", common.ErrValidation)
		}
		pet.BirthDate = birthDate
	}
	if req.Image != nil {
		pet.Image = *req.Image
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return common.Errorf("failed to update pet %s: %w", petID, err)
	}
	log.Printf("Pet updated: %s", petID)
	return nil
}

func (s *PetService) DeletePet(ctx context.Context, petID string) error {
	if petID == "" {
		return common.Errorf("pet id is required: %w", common.ErrValidation)
	}
	if err := s.petRepo.Delete(ctx, petID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrPetNotFound
		}
		return common.Errorf("failed to delete pet %s: %w", petID, err)
	}
	log.Printf("Pet deleted: %s", petID)
	return nil
}
