package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/config"
	"github.com/noah-isme/maum-go-api/internal/database"
	"github.com/noah-isme/maum-go-api/internal/handler"
	"github.com/noah-isme/maum-go-api/internal/middleware"
	"github.com/noah-isme/maum-go-api/internal/models"
	"github.com/noah-isme/maum-go-api/internal/realtime"
	"github.com/noah-isme/maum-go-api/internal/repository"
	"github.com/noah-isme/maum-go-api/internal/router"
	"github.com/noah-isme/maum-go-api/internal/service"
	"github.com/noah-isme/maum-go-api/internal/session"
	"github.com/noah-isme/maum-go-api/pkg/ai"
	"github.com/noah-isme/maum-go-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ActivityRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := storage.New(storage.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create storage client: %v", err)
	}

	counselor, err := ai.NewOpenAICounselor(ai.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.ChatModel,
		MaxTokens:   cfg.ChatMaxTokens,
		Temperature: cfg.ChatTemperature,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create counselor client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessions := session.NewStore()
	hub := realtime.NewHub(logger)
	activityRepo := repository.NewActivityRepository(db)

	chatService := service.NewChatService(sessions, counselor, logger)
	activityService := service.NewActivityService(sessions, store, activityRepo, hub, logger)
	adminService := service.NewAdminService(activityRepo, store, logger)

	authHandler := handler.NewAuthHandler(cfg.AdminUIDList, logger)
	chatHandler := handler.NewChatHandler(chatService, validate, logger)
	activityHandler := handler.NewActivityHandler(activityService, validate, logger)
	adminHandler := handler.NewAdminActivityHandler(adminService, hub, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:          authHandler,
		ChatHandler:          chatHandler,
		ActivityHandler:      activityHandler,
		AdminActivityHandler: adminHandler,
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
		AdminMiddleware:      middleware.AdminOnly(cfg.AdminUIDList),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
