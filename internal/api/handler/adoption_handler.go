package handler

import (
	"net/http"

	"adoptme/internal/app/service"
	"adoptme/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdoptionHandler struct {
	adoptionService *service.AdoptionService
}

func NewAdoptionHandler(adoptionService *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

func (h *AdoptionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listAdoptions)
	r.Get("/{aid}", h.getAdoption)
	r.Post("/{uid}/{pid}", h.createAdoption)
}

func (h *AdoptionHandler) listAdoptions(w http.ResponseWriter, r *http.Request) {
	adoptions, err := h.adoptionService.ListAdoptions(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, adoptions)
}

func (h *AdoptionHandler) getAdoption(w http.ResponseWriter, r *http.Request) {
	adoption, err := h.adoptionService.GetAdoption(r.Context(), chi.URLParam(r, "aid"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, adoption)
}

func (h *AdoptionHandler) createAdoption(w http.ResponseWriter, r *http.Request) {
	adoption, err := h.adoptionService.CreateAdoption(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "pid"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessEnvelope{Status: "success", Message: "Pet adopted", Payload: adoption.ID})
}
