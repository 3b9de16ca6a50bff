package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitbite/fitbite-backend/config"
	"github.com/fitbite/fitbite-backend/internal/api"
	"github.com/fitbite/fitbite-backend/internal/database"
	"github.com/fitbite/fitbite-backend/internal/router"
	"github.com/fitbite/fitbite-backend/internal/server"
	"github.com/fitbite/fitbite-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := database.NewRedis(cfg)

	llmService, err := service.NewLLMService(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	goalService := service.NewGoalService(db, llmService)
	foodService := service.NewFoodService(db, llmService)
	profileService := service.NewProfileService(db)

	r := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewGoalHandler(goalService),
		api.NewFoodHandler(foodService),
		api.NewProfileHandler(profileService),
		authService,
	)

	srv := server.New(cfg, r)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
