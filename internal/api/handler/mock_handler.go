package handler

import (
	"net/http"
	"strconv"

	"adoptme/internal/app/service"
	"adoptme/internal/common"

	"github.com/go-chi/chi/v5"
)

// Default quantities for the no-persistence sampling endpoints.
const (
	defaultMockUsers = 50
	defaultMockPets  = 100
)

type MockHandler struct {
	mockService *service.MockService
}

func NewMockHandler(mockService *service.MockService) *MockHandler {
	return &MockHandler{mockService: mockService}
}

func (h *MockHandler) RegisterRoutes(r chi.Router) {
	r.Get("/mockingusers", h.mockingUsers)
	r.Get("/mockingpets", h.mockingPets)
	r.Post("/generateData", h.generateData)
}

func (h *MockHandler) mockingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.mockService.GenerateUsers(defaultMockUsers)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, users)
}

func (h *MockHandler) mockingPets(w http.ResponseWriter, r *http.Request) {
	common.RespondWithPayload(w, http.StatusOK, h.mockService.GeneratePets(defaultMockPets))
}

func (h *MockHandler) generateData(w http.ResponseWriter, r *http.Request) {
	usersQty, err := parseQty(r.URL.Query().Get("users"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	petsQty, err := parseQty(r.URL.Query().Get("pets"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}

	result, err := h.mockService.GenerateAndPersist(r.Context(), usersQty, petsQty)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, result)
}

// parseQty treats an absent parameter as zero and a non-numeric one as
// a validation error.
func parseQty(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.ErrInvalidDataType
	}
	return qty, nil
}
