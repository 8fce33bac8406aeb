package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrdash/internal"
	"hrdash/internal/config"
	"hrdash/internal/container"
	"hrdash/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create dependency injection container
	appContainer, err := container.New(ctx, appConfig, logger)
	if err != nil {
		logger.Error("Failed to create application container: %v", err)
		os.Exit(1)
	}
	defer appContainer.Shutdown(context.Background())

	// A source that cannot be read at startup is fatal
	probeCtx, cancelProbe := context.WithTimeout(ctx, 30*time.Second)
	err = appContainer.Probe(probeCtx)
	cancelProbe()
	if err != nil {
		logger.Error("Dataset source unavailable: %v", err)
		os.Exit(1)
	}

	server := ui.NewServer(ui.ServerConfig{
		GinMode:        appConfig.Server.GinMode,
		StaticDir:      appConfig.Server.StaticDir,
		AllowedOrigins: appConfig.Server.CORSAllowedOrigins,
	}, appContainer.Service, appContainer.Metrics, logger)

	var ops *ui.OpsApp
	if appConfig.Ops.Enabled {
		ops = ui.NewOpsApp(appContainer.Metrics, appContainer.Probe, logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(":" + appConfig.Server.Port)
	})
	if ops != nil {
		g.Go(func() error {
			return ops.Start(":" + appConfig.Ops.Port)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down (timeout %s)", appConfig.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		if ops != nil {
			if err := ops.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Ops listener shutdown: %v", err)
			}
		}
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
