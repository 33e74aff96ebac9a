package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/config"
	"github.com/basura/basura-api/internal/logger"
	"github.com/basura/basura-api/internal/mail"
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

	username := flag.String("username", cfg.Seed.SuperAdminUsername, "admin username")
	password := flag.String("password", cfg.Seed.SuperAdminPassword, "admin password")
	flag.Parse()

	log := logger.New(cfg.Environment)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer backend.Close(ctx)

	tokens := auth.NewTokenManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, cfg.Auth.PasswordResetTTL)
	authService := service.NewAuthService(backend.Repositories.Users, backend.Repositories.Clients, tokens,
		mail.NewLogSender(log), cfg.Auth.PasswordResetURL, log)

	created, err := authService.EnsureSuperAdmin(ctx, *username, *password)
	if err != nil {
		log.Error().Err(err).Str("username", *username).Msg("failed to create admin")
		os.Exit(1)
	}
	if created {
		log.Info().Str("username", *username).Msg("admin created")
		return
	}
	log.Info().Str("username", *username).Msg("admin already exists")
}
