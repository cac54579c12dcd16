package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "github.com/mapsensemedia/betterrental-sub009/internal/api/http"
	"github.com/mapsensemedia/betterrental-sub009/internal/config"
	"github.com/mapsensemedia/betterrental-sub009/internal/logger"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository/postgres"
	"github.com/mapsensemedia/betterrental-sub009/internal/security"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"
	"github.com/mapsensemedia/betterrental-sub009/internal/storage"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental platform API...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Photo Storage
	photoStore, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	logger.Info("Using local photo storage", "upload_dir", cfg.Storage.UploadDir)

	// Resolve the pricing timezone once; weekend classification follows it
	// regardless of the offset on incoming timestamps.
	pricingLoc, err := time.LoadLocation(cfg.Pricing.Timezone)
	if err != nil {
		log.Fatalf("Invalid pricing timezone %q: %v", cfg.Pricing.Timezone, err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	settingsSvc := service.NewSettingsService(store.SettingsRepository, pricing.WeekendPolicy(cfg.Pricing.WeekendPolicy))
	depositSvc := service.NewDepositService(
		store.DepositRepository,
		store.BookingRepository,
		store.CustomerRepository,
		emailSvc,
	)

	holdAmount, err := decimal.NewFromString(cfg.Pricing.DepositHold)
	if err != nil {
		log.Fatalf("Invalid deposit hold amount %q: %v", cfg.Pricing.DepositHold, err)
	}
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.CustomerRepository,
		settingsSvc,
		depositSvc,
		emailSvc,
		holdAmount,
		pricingLoc,
	)
	fleetSvc := service.NewFleetService(store.VehicleRepository)
	incidentSvc := service.NewIncidentService(store.IncidentRepository, store.BookingRepository, photoStore)
	ticketSvc := service.NewTicketService(store.TicketRepository, store.OperatorRepository)

	// Set up the HTTP router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:      tokenManager,
		BookingSvc:  bookingSvc,
		FleetSvc:    fleetSvc,
		DepositSvc:  depositSvc,
		IncidentSvc: incidentSvc,
		TicketSvc:   ticketSvc,
		SettingsSvc: settingsSvc,
		PhotoStore:  photoStore,
		MaxUploadMB: cfg.Storage.MaxFileSize,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
