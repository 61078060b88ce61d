package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sivitb/config"
	"sivitb/internal/database"
	"sivitb/internal/router"
	"sivitb/pkg/cloudinary"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Server.Env != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	log.Logger = logger

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}
	database.SeedAdmin(db)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			logger.Fatal().Err(err).Msg("cloudinary")
		}
	} else {
		logger.Warn().Msg("cloudinary sin configurar: la subida de adjuntos queda deshabilitada")
	}

	engine := router.Setup(cfg, db, cloud, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("servidor escuchando")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("apagando servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("servidor detenido")
}
