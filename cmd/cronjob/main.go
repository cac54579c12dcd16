package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/config"
	"github.com/mapsensemedia/betterrental-sub009/internal/jobs"
	"github.com/mapsensemedia/betterrental-sub009/internal/logger"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository/postgres"
	"github.com/mapsensemedia/betterrental-sub009/internal/scheduler"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-bookings', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental platform cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	jobServices := &jobs.Services{
		Email:    emailSvc,
		Booking:  bookingSvc,
		Deposit:  depositSvc,
		Settings: settingsSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-bookings":
		jobRunner.MarkOverdueBookings()
	case "assess-late-fees":
		jobRunner.AssessLateFees()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "release-deposits":
		jobRunner.ReleaseDeposits()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-overdue-bookings\n")
		fmt.Printf("  - assess-late-fees\n")
		fmt.Printf("  - send-return-reminders\n")
		fmt.Printf("  - release-deposits\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
