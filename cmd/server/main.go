package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	httpadapter "resume-composer/internal/adapter/http"
	repo "resume-composer/internal/adapter/repository"
	"resume-composer/internal/config"
	"resume-composer/internal/export/docx"
	"resume-composer/internal/export/raster"
	"resume-composer/internal/logger"
	"resume-composer/internal/usecase"
	infra "resume-composer/pkg/infrastructure"
)

func main() {
	log := logger.New("resume-composer")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	store, err := repo.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("storage unavailable")
	}
	defer store.Close()

	browser := infra.NewChromedpBrowser(cfg.ChromePath, cfg.ExportTimeout, log)
	composer := usecase.NewComposer(store,
		usecase.WithPDF(raster.New(browser, raster.WithScale(cfg.RasterScale), raster.WithLogger(log))),
		usecase.WithDOCX(docx.New(docx.WithLogger(log))),
		usecase.WithOutputDir(cfg.OutputDir),
		usecase.WithTimeout(cfg.ExportTimeout),
		usecase.WithLogger(log),
	)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httpadapter.NewHandler(composer, cfg.Presentation(), log).Register(app)

	go func() {
		log.Info().
			Int("port", cfg.Port).
			Str("store", cfg.Store).
			Str("output_dir", cfg.OutputDir).
			Msg("HTTP server starting")
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
