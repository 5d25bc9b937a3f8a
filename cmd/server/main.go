package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/config"
	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
	"github.com/mini-rodalies-3d/delaymap/internal/gtfsload"
	"github.com/mini-rodalies-3d/delaymap/internal/httpapi"
	"github.com/mini-rodalies-3d/delaymap/internal/schedulestore"
	"github.com/mini-rodalies-3d/delaymap/internal/telemetry"
)

func main() {
	log.Println("Starting delaymap server...")

	cfg := config.Load()

	reporter, err := telemetry.New(cfg.SentryDSN)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	log.Println("Loading static schedule...")
	load := func(ctx context.Context) (*gtfs.Schedule, error) {
		return gtfsload.Load(ctx, cfg.StaticGTFSURL, cfg.UpstreamTimeout)
	}
	store, err := schedulestore.New(context.Background(), load, reporter)
	if err != nil {
		log.Fatalf("Initial schedule load failed, nothing to serve: %v", err)
	}
	log.Println("Static schedule loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go store.RunPeriodicRefresh(ctx, cfg.StaticRefreshInterval)

	router := httpapi.NewRouter(cfg, store, reporter)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}
