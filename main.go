package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"referral-network-api/config"
	"referral-network-api/internal/ai"
	"referral-network-api/internal/app"
	"referral-network-api/internal/database"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/scheduler"
	"referral-network-api/internal/server"
	"referral-network-api/internal/storage/blob"

	_ "referral-network-api/docs" // Import generated docs (regenerated by swag init)

	"github.com/redis/go-redis/v9"
)

// @title           Referral Network API
// @version         1.0
// @description     Recruiting referral marketplace: jobs, referrals, AI candidate matching and role dashboards.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewConnectionPool(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(ctx, time.Minute)
	err = database.Migrate(migrateCtx, dbPool)
	cancelMigrate()
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// --- Redis is an optional cache ---
	var redisClient *redis.Client
	if rdb, err := database.NewRedisClient(cfg.Redis); err != nil {
		log.Printf("WARN: %v. Dashboard cache disabled.", err)
	} else {
		redisClient = rdb
		defer redisClient.Close()
	}

	blobs, err := blob.NewLocalStore(cfg.Storage.ResumeDir)
	if err != nil {
		log.Fatalf("Failed to initialize resume storage: %v", err)
	}

	var completer ai.Completer
	if lc, err := ai.NewCompleter(ctx, cfg.AI); err != nil {
		log.Printf("WARN: AI features disabled: %v", err)
		completer = ai.Disabled(err)
	} else {
		completer = lc
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	application := app.New(cfg, dbPool, redisClient, completer, blobs, hub)

	sched := scheduler.New(application.Services.Resumes, cfg.Scheduler.UploadCleanupSpec)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server and scheduler...")
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	sched.Stop()

	log.Println("Application gracefully stopped.")
}
