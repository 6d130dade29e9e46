package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adoptme/internal/api"
	"adoptme/internal/app/service"
	"adoptme/internal/common/security"
	"adoptme/internal/domain/repository"
	"adoptme/internal/platform/config"
	"adoptme/internal/platform/database"
	"adoptme/internal/platform/sessions"
)

func main() {
	config.Load()
	security.InitJWT()

	database.Connect()
	defer database.Close()

	sessions.ConnectRedis()
	defer sessions.CloseRedis()
	fmt.Println("Postgres and Redis connected.")

	userRepo := repository.NewPgUserRepository(database.DB)
	petRepo := repository.NewPgPetRepository(database.DB)
	adoptionRepo := repository.NewPgAdoptionRepository(database.DB)

	revocations := sessions.NewRevocationStore(sessions.RDB)
	authService := service.NewAuthService(userRepo, revocations)
	userService := service.NewUserService(userRepo)
	petService := service.NewPetService(petRepo)
	// AdoptionService needs the raw handle for its transaction.
	adoptionService := service.NewAdoptionService(adoptionRepo, userRepo, petRepo, database.DB)
	mockService := service.NewMockService(userRepo, petRepo)

	router := api.NewRouter(userService, petService, adoptionService, authService, mockService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
