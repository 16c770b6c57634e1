package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"questhunt/internal/cache"
	"questhunt/internal/config"
	"questhunt/internal/repository"
	"questhunt/internal/service"
	"questhunt/internal/storage"
	"questhunt/internal/transport/rest"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.AdminSetupKey == "" {
		log.Println("Warning: ADMIN_SETUP_KEY not set, admin setup disabled")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Redis connection
	redisAddr := cfg.RedisURI
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Photo blob store
	photos, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to init photo store:", err)
	}
	log.Printf("Photo store ready (bucket %s)", cfg.S3Bucket)

	// Initialize repositories
	teamRepo := repository.NewTeamRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	questRepo := repository.NewSideQuestRepo(db)
	questSubRepo := repository.NewSideQuestSubmissionRepo(db)
	configRepo := repository.NewGameConfigRepo(db)

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)

	clock := clockwork.NewRealClock()

	// Initialize services
	authSvc := service.NewAuthService(teamRepo, cfg.JWTSecret, cfg.AdminSetupKey, clock)
	configSvc := service.NewConfigService(configRepo)
	teamSvc := service.NewTeamService(teamRepo, taskRepo, submissionRepo, questSubRepo, configSvc, leaderboard, clock)
	taskSvc := service.NewTaskService(taskRepo, teamRepo, submissionRepo, configSvc, leaderboard, clock)
	submissionSvc := service.NewSubmissionService(submissionRepo, taskRepo, teamRepo, configSvc, photos, leaderboard, clock, cfg.MaxUploadBytes)
	questSvc := service.NewSideQuestService(questRepo, questSubRepo, teamRepo, photos, clock, cfg.MaxUploadBytes)
	leaderboardSvc := service.NewLeaderboardService(submissionRepo, taskRepo, teamRepo, configSvc, leaderboard)
	statsSvc := service.NewStatsService(teamRepo, taskRepo, submissionRepo)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		TeamService:        teamSvc,
		TaskService:        taskSvc,
		SubmissionService:  submissionSvc,
		SideQuestService:   questSvc,
		LeaderboardService: leaderboardSvc,
		ConfigService:      configSvc,
		StatsService:       statsSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/tasks")
		log.Println("  POST /v1/tasks/{id}/start")
		log.Println("  POST /v1/submissions/{taskId}/upload")
		log.Println("  GET  /v1/leaderboard")
		log.Println("  GET  /v1/sidequests")
		log.Println("  GET/PUT /v1/admin/*")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
