package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/config"
	"github.com/basura/basura-api/internal/excel"
	httphandler "github.com/basura/basura-api/internal/http"
	"github.com/basura/basura-api/internal/http/middleware"
	"github.com/basura/basura-api/internal/logger"
	"github.com/basura/basura-api/internal/mail"
	"github.com/basura/basura-api/internal/pdf"
	"github.com/basura/basura-api/internal/service"
	"github.com/basura/basura-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	ctx := context.Background()

	backend, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("failed to open store")
	}
	repos := backend.Repositories

	var mailer service.Mailer
	if cfg.Mail.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, password reset mails are logged instead of sent")
		mailer = mail.NewLogSender(log)
	} else {
		mailer = mail.NewSMTPSender(cfg.Mail, log)
	}

	tokens := auth.NewTokenManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, cfg.Auth.PasswordResetTTL)
	authService := service.NewAuthService(repos.Users, repos.Clients, tokens, mailer, cfg.Auth.PasswordResetURL, log)

	created, err := authService.EnsureSuperAdmin(ctx, cfg.Seed.SuperAdminUsername, cfg.Seed.SuperAdminPassword)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("super admin not seeded")
	case created:
		log.Info().Str("username", cfg.Seed.SuperAdminUsername).Msg("super admin created")
	default:
		log.Info().Msg("super admin already exists")
	}

	handler := httphandler.NewHandler(httphandler.Services{
		Auth:       authService,
		Employees:  service.NewEmployeeService(repos.Users),
		Properties: service.NewPropertyService(repos.Properties, repos.Clients),
		Clients:    service.NewClientService(repos.Clients, repos.Properties),
		Attributes: service.NewAttributeService(repos.Attributes),
		Entries:    service.NewEntryService(repos.Entries, repos.Clients),
		Reports:    service.NewReportService(repos.Clients, repos.Entries, excel.NewGenerator(), pdf.NewGenerator()),
	}, log)

	router := httphandler.NewRouter(handler,
		middleware.Auth(tokens.ParseAccess),
		middleware.Auth(tokens.ParseRefresh),
		httphandler.RouterOptions{
			Environment:    cfg.Environment,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Metrics:        middleware.NewMetrics("basura"),
			Logger:         log,
		},
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting basura api")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := backend.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
	log.Info().Msg("server stopped")
}
