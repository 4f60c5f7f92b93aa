// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"eventmanagement/internal/config"
	"eventmanagement/internal/database"
	"eventmanagement/internal/handler"
	"eventmanagement/internal/logging"
	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
	"eventmanagement/internal/service"
	"eventmanagement/internal/token"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// ── 1. Database: connect, migrate ─────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to postgres", zap.String("db", cfg.DBName))

	if err := database.RunMigrations(cfg.URL(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketRepository()
	ledger := repository.NewLedger(pool, ticketRepo)
	regRepo := repository.NewRegistrationRepository(pool, ticketRepo)

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiry, nil)

	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	venueSvc := service.NewVenueService(venueRepo)
	eventSvc := service.NewEventService(eventRepo, venueRepo, ledger, nil)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, userRepo, nil, nil)
	dashSvc := service.NewDashboardService(eventRepo, venueRepo, userRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	venueHandler := handler.NewVenueHandler(venueSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	regHandler := handler.NewRegistrationHandler(regSvc)
	dashHandler := handler.NewDashboardHandler(dashSvc)

	if err := seedAdmin(ctx, cfg, userRepo, logger); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(handler.Authenticate(tokens, userRepo))

	r.Get("/health", handler.HealthCheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Get("/upcoming", eventHandler.Upcoming)
		r.Get("/my-events", eventHandler.MyEvents)
		r.Get("/{id}", eventHandler.Get)
		r.Post("/", eventHandler.Create)
		r.Put("/{id}", eventHandler.Update)
		r.Delete("/{id}", eventHandler.Delete)
	})

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.List)
		r.Get("/{id}", venueHandler.Get)
		r.Post("/", venueHandler.Create)
		r.Put("/{id}", venueHandler.Update)
		r.Delete("/{id}", venueHandler.Delete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/email/{email}", userHandler.GetByEmail)
		r.Get("/{id}", userHandler.Get)
		r.Post("/", userHandler.Create)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", regHandler.Book)
		r.Get("/my-bookings", regHandler.MyBookings)
		r.Get("/has-booked/{eventId}", regHandler.HasBooked)
		r.Get("/{id}/invoice", regHandler.Invoice)
	})

	r.Get("/dashboard/stats", dashHandler.Stats)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// seedAdmin creates the default ADMIN account on first boot. Skipped when
// ADMIN_PASSWORD is unset or the account already exists.
func seedAdmin(ctx context.Context, cfg *config.Config, users *repository.UserRepository, logger *zap.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}
	_, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, &model.User{
		FirstName: "System",
		LastName:  "Admin",
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		Role:      model.RoleAdmin,
	})
	if err != nil {
		return err
	}
	logger.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}
