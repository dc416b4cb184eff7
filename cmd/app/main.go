package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alx74909/Projet-ATLAS/config"
	"github.com/Alx74909/Projet-ATLAS/handlers"
	"github.com/Alx74909/Projet-ATLAS/services"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := services.NewArtifactLoader(cfg.Artifacts, nil)
	bundle, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	predictor, err := services.NewPredictor(bundle)
	if err != nil {
		log.Fatalf("Failed to build predictor: %v", err)
	}
	log.Printf("Model artifacts loaded (version %s)", cfg.Artifacts.ModelVersion)

	events, err := services.NewEventPublisher(cfg.Redis)
	if err != nil {
		log.Printf("Prediction events disabled: %v", err)
	} else if events.Available() {
		log.Printf("Publishing prediction events on %s", cfg.Redis.Channel)
	}
	defer events.Close()

	if cfg.Database.Configured() {
		log.Printf("Order database configured at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	}

	h := handlers.NewPredictionHandler(predictor, events, cfg.Artifacts.ModelVersion)
	router, err := handlers.NewRouter(cfg.CORS, h, cfg.Artifacts.ModelVersion)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting server on %s", srv.Addr)
	if err := run(ctx, srv); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

func run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
