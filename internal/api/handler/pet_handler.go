package handler

import (
	"encoding/json"
	"net/http"

	"adoptme/internal/app/service"
	"adoptme/internal/common"

	"github.com/go-chi/chi/v5"
)

// Uploaded pet images are capped at 10 MiB.
const maxImageUploadBytes = 10 << 20

type PetHandler struct {
	petService *service.PetService
}

func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

func (h *PetHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPets)
	r.Post("/", h.createPet)
	r.Post("/withimage", h.createPetWithImage)
	r.Put("/{pid}", h.updatePet)
	r.Delete("/{pid}", h.deletePet)
}

func (h *PetHandler) listPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.ListPets(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, pets)
}

func (h *PetHandler) createPet(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid request payload (%v): %w", err, common.ErrValidation))
		return
	}

	pet, err := h.petService.CreatePet(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, pet)
}

func (h *PetHandler) createPetWithImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid multipart form (%v): %w", err, common.ErrValidation))
		return
	}

	req := service.CreatePetRequest{
		Name:      r.FormValue("name"),
		Specie:    r.FormValue("specie"),
		BirthDate: r.FormValue("birthDate"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("image file is required: %w", common.ErrValidation))
		return
	}
	defer file.Close()

	pet, err := h.petService.CreatePetWithImage(r.Context(), req, header.Filename, file)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, pet)
}

func (h *PetHandler) updatePet(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "pid")

	var req service.UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid request payload (%v): %w", err, common.ErrValidation))
		return
	}

	if err := h.petService.UpdatePet(r.Context(), petID, req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessEnvelope{Status: "success", Message: "Pet updated", Payload: petID})
}

func (h *PetHandler) deletePet(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "pid")
	if err := h.petService.DeletePet(r.Context(), petID); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessEnvelope{Status: "success", Message: "Pet deleted", Payload: petID})
}
