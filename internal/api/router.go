package api

import (
	"net/http"
	"time"

	"adoptme/internal/api/handler"
	"adoptme/internal/app/service"
	"adoptme/internal/common"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	userService *service.UserService,
	petService *service.PetService,
	adoptionService *service.AdoptionService,
	authService *service.AuthService,
	mockService *service.MockService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		userHandler := handler.NewUserHandler(userService)
		api.Route("/users", userHandler.RegisterRoutes)

		petHandler := handler.NewPetHandler(petService)
		api.Route("/pets", petHandler.RegisterRoutes)

		adoptionHandler := handler.NewAdoptionHandler(adoptionService)
		api.Route("/adoptions", adoptionHandler.RegisterRoutes)

		sessionHandler := handler.NewSessionHandler(authService)
		api.Route("/sessions", sessionHandler.RegisterRoutes)

		mockHandler := handler.NewMockHandler(mockService)
		api.Route("/mocks", mockHandler.RegisterRoutes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "route not found")
	})

	return r
}
