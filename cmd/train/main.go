// Offline single-shot training: reads the dataset CSV, fits the weakness
// classifier and writes the model artifact the backend serves from.
package main

import (
	"context"
	"fmt"
	"log"

	"coach-backend/cmd"
	"coach-backend/internal/core"
	"coach-backend/internal/dataset"
	"coach-backend/internal/storage"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Root         string  `env:"APP_DATA_DIR" envDefault:"./coach-data"`
	DatasetPath  string  `env:"DATASET_PATH" envDefault:""`
	ModelKey     string  `env:"MODEL_KEY" envDefault:"weakness_classifier.bin"`
	TestFraction float64 `env:"TEST_FRACTION" envDefault:"0.2"`
	Seed         int64   `env:"SEED" envDefault:"42"`
	MinRows      int     `env:"MIN_ROWS" envDefault:"10"`
}

const modelBucket = "models"

func main() {
	cmd.LoadEnvFile()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = fmt.Sprintf("%s/data/gps_performance.csv", cfg.Root)
	}

	records, err := dataset.ReadRecords(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to read training data: %v", err)
	}
	log.Printf("Training on dataset %s (%s)", cfg.DatasetPath, dataset.Describe(records))

	opts := core.TrainingOptions{
		TestFraction: cfg.TestFraction,
		Seed:         cfg.Seed,
		MinRows:      cfg.MinRows,
	}
	artifact, report, err := core.Train(records, opts)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Println("\nClassification report on held-out partition:")
	fmt.Println(report.String())

	provider := storage.NewLocalProvider(cfg.Root)
	if err := core.SaveArtifact(context.Background(), provider, modelBucket, cfg.ModelKey, artifact); err != nil {
		log.Fatalf("Failed to save model artifact: %v", err)
	}
	log.Printf("Model trained and saved to %s/%s/%s", cfg.Root, modelBucket, cfg.ModelKey)
}
