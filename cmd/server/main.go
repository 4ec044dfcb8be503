package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/David-H-L/Backend/internal/auth"
	"github.com/David-H-L/Backend/internal/config"
	"github.com/David-H-L/Backend/internal/db"
	routes "github.com/David-H-L/Backend/internal/http"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/service"
	"github.com/David-H-L/Backend/internal/store"
	"github.com/David-H-L/Backend/internal/ws"
)

func main() {
	// A missing .env is fine: production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	cfg := config.Load()

	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Println("Running database migrations...")
	if err := database.AutoMigrate(&models.User{}, &models.Post{}, &models.Vote{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	hub := ws.NewHub()
	go hub.Run()

	stores := store.NewGorm(database)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	api := &routes.API{
		Posts: service.NewPostService(stores.Posts, stores.Users),
		Users: service.NewUserService(stores.Users, tokens),
		Votes: service.NewVoteService(stores.Votes),
		Chat:  service.NewChatService(stores.Messages, stores.Users, hub),
	}

	router := gin.New()
	routes.Setup(router, api, hub, tokens, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
