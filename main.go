package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paint-estimator/config"
	"paint-estimator/controllers"
	"paint-estimator/interaction"
	"paint-estimator/routes"
	"paint-estimator/services"
)

func main() {
	cfg, envLoaded := config.Load()

	logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format, "paint-estimator")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Debug(".env not found; continuing with environment variables")
	}

	// One room list per process, dropped on exit.
	roomSvc := services.NewRoomService(logger)
	reportSvc := services.NewReportService(logger)

	var shell interaction.Shell
	switch cfg.Mode {
	case config.ModeMenu:
		shell = interaction.NewMenuShell(os.Stdin, os.Stdout, roomSvc, reportSvc, cfg.ExportPath, cfg.DefaultCoats, logger)
	default:
		gin.SetMode(gin.ReleaseMode)
		roomController := controllers.NewRoomController(roomSvc, reportSvc, logger, cfg.DefaultCoats)
		router := routes.SetupRouter(roomController, cfg.HTTP.CORSOrigins, logger)
		shell = interaction.NewFormShell(cfg.Addr(), router, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session started", zap.String("mode", cfg.Mode))
	if err := shell.Run(ctx); err != nil {
		logger.Fatal("session ended with error", zap.Error(err))
	}
	logger.Info("session ended", zap.Int("rooms", roomSvc.Count()))
}
