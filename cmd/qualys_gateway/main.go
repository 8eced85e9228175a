package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.apk-group.net/siem/backend/qualys-client/api/handlers/http"
	"gitlab.apk-group.net/siem/backend/qualys-client/app"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

var configPath = flag.String("config", "config.yaml", "service configuration file")

const cachePurgeInterval = time.Hour

func main() {
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); len(v) > 0 {
		*configPath = v
	}
	cfg := config.MustReadConfig(*configPath)

	if err := logger.InitGlobalLogger(cfg.Logger); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}

	logger.Info("Starting qualys gateway")
	logger.InfoWithFields("Configuration loaded", map[string]interface{}{
		"config_path": *configPath,
		"log_level":   cfg.Logger.Level,
		"log_output":  cfg.Logger.Output,
	})

	appContainer := app.NewMustApp(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go purgeCache(ctx, appContainer)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		logger.InfoWithFields("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
		if err := appContainer.Close(); err != nil {
			logger.Warn("Failed to close database: %v", err)
		}
		logger.Info("Graceful shutdown completed")
		os.Exit(0)
	}()

	logger.Info("Starting HTTP server")
	if err := http.Run(appContainer, cfg.Server); err != nil {
		logger.Fatal("HTTP server failed: %v", err)
	}
}

// purgeCache drops expired persistent cache rows until ctx is done.
func purgeCache(ctx context.Context, appContainer app.AppContainer) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := appContainer.PurgeCache(ctx)
			if err != nil {
				logger.WarnContext(ctx, "Failed to purge response cache: %v", err)
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "Purged %d expired cache entries", n)
			}
		}
	}
}
