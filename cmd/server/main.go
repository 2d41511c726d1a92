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

	"pulsemind/fitness-coach/internal/api"
	"pulsemind/fitness-coach/internal/assistant"
	"pulsemind/fitness-coach/internal/config"
	"pulsemind/fitness-coach/internal/repository/mongo"
	"pulsemind/fitness-coach/internal/service"
	"pulsemind/fitness-coach/internal/storage"
	"pulsemind/fitness-coach/internal/tracking"
)

func main() {
	log.Println("Starting PulseMind Fitness Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureRecordIndexes(ctx, appDB.Collection("personal_records"))
		mongo.EnsureExportIndexes(ctx, appDB.Collection("exports"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	recordRepo := mongo.NewMongoRecordRepository(appDB)
	exportRepo := mongo.NewMongoExportRepository(appDB)

	// --- Tracking Engine ---
	trackingManager := tracking.NewManager()
	tickCtx, stopTicking := context.WithCancel(context.Background())
	defer stopTicking()
	go trackingManager.Run(tickCtx)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	planService := service.NewPlanService(planRepo)
	workoutService := service.NewWorkoutService(planRepo, sessionRepo, recordRepo, trackingManager, cfg.Tracking)
	exportService := service.NewExportService(planRepo, exportRepo, userRepo, fileStorage)

	// --- Assistant Bridge ---
	bridge := assistant.NewBridge(cfg.Assistant, planService)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, planService, workoutService, exportService, bridge)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopTicking()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
