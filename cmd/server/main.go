package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "stellarion-backend/internal/api/http"
	"stellarion-backend/internal/auth"
	"stellarion-backend/internal/config"
	"stellarion-backend/internal/jobs"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository/postgres"
	"stellarion-backend/internal/scheduler"
	"stellarion-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local .env overrides, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Stellarion Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Auth configuration", "provider", cfg.Auth.Provider)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Token Verifier
	var verifier auth.TokenVerifier
	if cfg.Auth.Provider == "local" {
		logger.Warn("Using local HS256 token verifier; do not use in production")
		verifier = auth.NewHS256Verifier(cfg.Auth.LocalSecret)
	} else {
		verifier, err = auth.NewFirebaseVerifier(context.Background(), cfg.Auth.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Firebase verifier", "error", err)
			log.Fatalf("Failed to initialize Firebase verifier: %v", err)
		}
	}

	// Initialize Services
	accountSvc := service.NewAccountService(store.UserRepository)
	userSvc := service.NewUserService(store.UserRepository)
	appSvc := service.NewApplicationService(store.ApplicationRepository, store.UserRepository, store.NotificationRepository)
	roleReqSvc := service.NewRoleRequestService(store.RoleRequestRepository, store.UserRepository, store.NotificationRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP surface
	authMW := httpapi.NewAuthMiddleware(verifier, accountSvc)
	router := httpapi.NewRouter(httpapi.Handlers{
		Applications:  httpapi.NewApplicationHandler(appSvc),
		RoleRequests:  httpapi.NewRoleRequestHandler(roleReqSvc),
		Users:         httpapi.NewUserHandler(userSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
	}, authMW, db)

	// Start review reminder scheduler alongside the server
	jobRunner := jobs.NewJobRunner(store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
