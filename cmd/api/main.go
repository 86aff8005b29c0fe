package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/staffhub-api/internal/bootstrap"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/staffhub-api/internal/interfaces/http"
	"github.com/jhoicas/staffhub-api/pkg/config"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("sessions", cfg.Session.Store).
		Str("role_model", cfg.Auth.RoleModel).
		Msg("iniciando aplicación")

	ctx := context.Background()
	container, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer container.Close()

	app := httpRouter.NewApp(container.RouterDeps())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "StaffHub API",
		}))
	}

	var sweeper *scheduler.SessionSweeper
	if cfg.Session.SweepCron != "" {
		sweeper, err = scheduler.NewSessionSweeper(cfg.Session.SweepCron, container.Sessions, log)
		if err != nil {
			log.Fatal().Err(err).Msg("programar barrido de sesiones")
		}
		sweeper.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if sweeper != nil {
		sweeper.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
