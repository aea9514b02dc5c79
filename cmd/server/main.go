package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	grpcapi "volunteer-backend/internal/api/grpc"
	httpapi "volunteer-backend/internal/api/http"
	"volunteer-backend/internal/config"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/notify"
	"volunteer-backend/internal/repository/postgres"
	"volunteer-backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply database migrations before serving")
	seedPath := flag.String("seed", "", "Load demo data from a YAML file before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Volunteer Shift Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Registration configuration", "mode", cfg.Registration.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	db, err := postgres.Open(ctx, cfg.Database.Driver, cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}
	if *seedPath != "" {
		seed, err := postgres.LoadSeedFile(*seedPath)
		if err != nil {
			log.Fatalf("Failed to load seed data: %v", err)
		}
		if err := postgres.Seed(ctx, db, seed); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)
	if cfg.Registration.Mode == config.RegistrationModeUpsert {
		if err := store.RegistrationRepository.EnsureUniqueIndex(ctx); err != nil {
			log.Fatalf("Failed to ensure registration unique index: %v", err)
		}
	}

	// Initialize notifiers
	pusher, err := notify.NewPusherFromConfig(ctx, cfg.Push)
	if err != nil {
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}
	mailer := notify.NewMailerFromConfig(cfg.Email)

	// Initialize Services
	services := httpapi.Services{
		Organizations: service.NewOrganizationService(store.OrganizationRepository),
		Shifts:        service.NewShiftService(store.ShiftRepository),
		Users:         service.NewUserService(store.UserRepository),
		Registrations: service.NewRegistrationService(
			store.RegistrationRepository,
			store.ShiftRepository,
			store.OrganizationRepository,
			store.NotificationRepository,
			pusher,
			mailer,
			cfg.Registration.Mode,
		),
		Notifications: service.NewNotificationService(store.NotificationRepository),
		Achievements:  service.NewAchievementService(store.UserRepository, store.RegistrationRepository),
	}

	// HTTP API
	handler := httpapi.NewRouter(httpapi.NewHandler(services, db), httpapi.Options{CORSOrigins: cfg.Server.CORSOrigins})
	httpServer := httpapi.NewServer(cfg.GetServerAddress(), handler)
	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// gRPC health
	var grpcServer interface{ GracefulStop() }
	if addr := cfg.GetGRPCAddress(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("Failed to listen on %s: %v", addr, err)
		}
		healthSrv := grpcapi.NewHealthServer(db, 0)
		go healthSrv.Run(ctx)
		s := grpcapi.NewServer(healthSrv)
		grpcServer = s
		go func() {
			logger.Info("gRPC health server listening", "address", addr)
			if err := s.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error", "error", err)
	}
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	logger.Info("Server stopped. Goodbye!")
}
