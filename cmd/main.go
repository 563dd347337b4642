package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	_ "github.com/strixcodecipher/relicsneb/docs"
	"github.com/strixcodecipher/relicsneb/internal/config"
	"github.com/strixcodecipher/relicsneb/internal/handlers"
	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/repository"
	"github.com/strixcodecipher/relicsneb/internal/server"
	"github.com/strixcodecipher/relicsneb/internal/service"
)

// @title        Nebula Relics Tracker API
// @version      1.0.0
// @description  Status checks and spawn predictions for the Nebula Relics tracker.
// @BasePath     /
func main() {
	// load configs/config.yml + environment
	cfg, err := config.Load(os.Getenv("CONFIG_DIR"))
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := config.Validate(cfg); err != nil {
		log.Fatalw("invalid config", "err", err)
	}
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// open the document store once for the whole process
	repos, err := repository.Open(context.Background(), cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.Store.Driver, "err", err)
	}

	// wire dependencies
	services := service.NewService(repos, service.Options{
		StoreTimeout: cfg.Store.Timeout,
		Log:          log,
	})
	apiHandler := handlers.NewHandler(services, log, cfg.CORS)

	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, repos, cfg, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_server_starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, drains in-flight requests and
// releases the store connection.
func waitForShutdown(srv *server.Server, repos *repository.Repository, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := repos.Close(ctx); err != nil {
		log.Errorw("failed to close store", "err", err)
	}
}
