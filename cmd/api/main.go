package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"coach-backend/cmd"
	backend "coach-backend/internal/api"
	"coach-backend/internal/content"
	"coach-backend/internal/core"
	"coach-backend/internal/database"
	"coach-backend/internal/dataset"
	"coach-backend/internal/messaging"
	"coach-backend/internal/recommend"
	"coach-backend/internal/storage"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Config struct {
	Root        string `env:"APP_DATA_DIR" envDefault:"./coach-data"`
	Port        int    `env:"BACKEND_PORT" envDefault:"5000"`
	DatasetPath string `env:"DATASET_PATH" envDefault:""`
	ModelKey    string `env:"MODEL_KEY" envDefault:"weakness_classifier.bin"`
	ContentPath string `env:"CONTENT_PATH" envDefault:""`
}

const modelBucket = "models"

func loadCatalog(path string) content.Catalog {
	if path == "" {
		return content.Default()
	}
	catalog, err := content.Load(path)
	if err != nil {
		log.Fatalf("Failed to load content catalog: %v", err)
	}
	return catalog
}

func main() {
	log.Println("Starting coach backend...")

	cmd.LoadEnvFile()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = filepath.Join(cfg.Root, "data", "gps_performance.csv")
	}

	db, err := database.OpenSQLite(filepath.Join(cfg.Root, "db", "coach.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	ctx := context.Background()

	count, err := database.CountRecords(ctx, db)
	if err != nil {
		log.Fatalf("Failed to count performance records: %v", err)
	}
	if count == 0 {
		records, err := dataset.ReadRecords(cfg.DatasetPath)
		if err != nil {
			// Serving continues; every request falls back to catalog keys.
			slog.Warn("performance dataset unavailable, recommendations will use fallback logic", "path", cfg.DatasetPath, "error", err)
		} else {
			if err := database.IngestRecords(ctx, db, records); err != nil {
				log.Fatalf("Failed to ingest performance dataset: %v", err)
			}
			slog.Info("ingested performance dataset", "path", cfg.DatasetPath, "summary", dataset.Describe(records))
		}
	}

	provider := storage.NewLocalProvider(cfg.Root)

	var predictor recommend.Predictor
	artifact, err := core.LoadArtifact(ctx, provider, modelBucket, cfg.ModelKey)
	switch {
	case err == nil:
		slog.Info("model artifact loaded", "key", cfg.ModelKey, "classes", len(artifact.Labels))
		predictor = artifact
	case errors.Is(err, core.ErrArtifactNotFound):
		slog.Warn("no model artifact found, recommendations will use fallback logic", "key", cfg.ModelKey)
	default:
		slog.Warn("model artifact could not be loaded, recommendations will use fallback logic", "key", cfg.ModelKey, "error", err)
	}

	catalog := loadCatalog(cfg.ContentPath)
	recommender := recommend.NewRecommender(db, predictor, catalog)

	queue := messaging.NewInMemoryQueue()
	var wg sync.WaitGroup
	worker := &messaging.Worker{
		DB:       db,
		Provider: provider,
		Bucket:   modelBucket,
		Options:  core.DefaultTrainingOptions(),
	}
	worker.Start(queue, &wg)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	apiHandler := backend.NewCoachService(db, queue, recommender, predictor != nil, cfg.DatasetPath, cfg.ModelKey)
	apiHandler.AddRoutes(r)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		queue.Close()
	}()

	log.Printf("Coach backend listening on port %d", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %d: %v", cfg.Port, err)
	}

	wg.Wait()
	log.Println("Server stopped.")
}
