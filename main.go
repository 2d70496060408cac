package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketpulse/market-pulse-be/internal/api"
	"github.com/marketpulse/market-pulse-be/internal/auth"
	"github.com/marketpulse/market-pulse-be/internal/config"
	"github.com/marketpulse/market-pulse-be/internal/database"
	"github.com/marketpulse/market-pulse-be/internal/logger"
	"github.com/marketpulse/market-pulse-be/internal/mail"
	"github.com/marketpulse/market-pulse-be/internal/services"
	"github.com/marketpulse/market-pulse-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration. A missing signing secret is fatal: the process
	// must not serve requests it cannot sign or verify tokens for.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the token codec
	codec, err := auth.NewCodec(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token codec")
	}

	// Set up the background mail dispatcher
	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.MailAPIURL != "" {
		mailer = mail.NewAPIMailer(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	}
	dispatcher := mail.NewDispatcher(mailer)
	go dispatcher.Run()

	// Set up stores and services
	userStore := store.NewUserStore(db)
	assetStore := store.NewAssetStore(db)
	identityService := services.NewIdentityService(userStore, codec, dispatcher, cfg.FrontendURL, !cfg.IsProduction())
	assetService := services.NewAssetService(assetStore)

	// Set up router
	router := api.NewRouter(identityService, assetService, codec, userStore, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	dispatcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
