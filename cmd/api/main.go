package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/nexgenbattles/tournament-api/internal/http/handlers"
	authmw "github.com/nexgenbattles/tournament-api/internal/http/middleware"
	"github.com/nexgenbattles/tournament-api/internal/platform/googleauth"
	"github.com/nexgenbattles/tournament-api/internal/platform/mailer"
	"github.com/nexgenbattles/tournament-api/internal/platform/payments"
	"github.com/nexgenbattles/tournament-api/internal/repo/postgres"
	"github.com/nexgenbattles/tournament-api/internal/service"
	"github.com/nexgenbattles/tournament-api/pkg/config"
	"github.com/nexgenbattles/tournament-api/pkg/database"
	"github.com/nexgenbattles/tournament-api/pkg/events"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
	mw "github.com/nexgenbattles/tournament-api/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables directly")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	usersRepo := postgres.NewUsersRepo(pool)
	eventsRepo := postgres.NewEventsRepo(pool)
	participantsRepo := postgres.NewParticipantsRepo(pool)
	contactsRepo := postgres.NewContactsRepo(pool)

	// Platform clients
	verifier := googleauth.NewVerifier(cfg.Google.ClientID)
	paymentsClient := payments.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Receipt)
	mail := selectMailer(cfg)

	// Services
	eventService := service.NewEventService(eventsRepo, participantsRepo, eventBus)
	userService := service.NewUserService(usersRepo, contactsRepo, eventBus)
	notifyService := service.NewNotifyService(mail, eventBus, cfg.Email.BatchDelay)

	// Handlers
	eventsHandler := handlers.NewEventsHandler(eventService, notifyService)
	usersHandler := handlers.NewUsersHandler(userService)
	paymentsHandler := handlers.NewPaymentsHandler(paymentsClient, paymentsClient, eventBus)

	requireUser := authmw.RequireUser(verifier, usersRepo)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("tournament-api"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Mount("/events", eventsHandler.Routes(requireUser))
		r.Mount("/user", usersHandler.Routes(requireUser))
		r.Mount("/payment", paymentsHandler.Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting tournament API", "port", cfg.Server.Port, "origins", cfg.CORS.AllowedOrigins)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func selectMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		logger.Info("Email dev mode: messages are logged, not sent")
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	default:
		return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.FromEmail,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
	}
}
