package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkasyanov/shoebox/internal/config"
	"github.com/dkasyanov/shoebox/internal/database"
	"github.com/dkasyanov/shoebox/internal/database/albums"
	"github.com/dkasyanov/shoebox/internal/database/assets"
	"github.com/dkasyanov/shoebox/internal/database/settings"
	http_controllers "github.com/dkasyanov/shoebox/internal/http"
	"github.com/dkasyanov/shoebox/internal/maintenance"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// within the configured timeout, calling onShutdown first.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the maintenance scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the store, repositories, maintenance scheduler and router
// together and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Shoebox v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	albumsRepo := albums.NewRepository(db.DB)
	assetsRepo := assets.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)

	scheduler := maintenance.NewScheduler(db, cfg.Maintenance.Schedule, cfg.Maintenance.Enabled)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start maintenance scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		DB:            db,
		AlbumStore:    albumsRepo,
		AssetStore:    assetsRepo,
		SettingsStore: settingsRepo,
		Version:       version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		scheduler.Stop(ctx)
	})
}
