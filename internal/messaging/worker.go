package messaging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"coach-backend/internal/core"
	"coach-backend/internal/database"
	"coach-backend/internal/dataset"
	"coach-backend/internal/storage"

	"gorm.io/gorm"
)

// Worker consumes training tasks, runs the training pipeline and persists
// the resulting artifact. A single worker goroutine serializes all training
// for the process, so two runs can never clobber the same artifact key.
type Worker struct {
	DB       *gorm.DB
	Provider storage.Provider
	Bucket   string
	Options  core.TrainingOptions
}

// Start drains the receiver until it is closed. Call wg.Wait after closing
// the queue to let an in-flight training run finish.
func (w *Worker) Start(receiver Receiver, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for task := range receiver.Tasks() {
			w.handle(task)
		}
		slog.Info("training worker stopped")
	}()
}

func (w *Worker) handle(task Task) {
	if task.Type() != TrainQueue {
		slog.Error("worker received task for unknown queue", "queue", task.Type())
		_ = task.Nack()
		return
	}

	var payload TrainTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		slog.Error("error unmarshalling train task", "error", err)
		_ = task.Nack()
		return
	}

	ctx := context.Background()
	if err := w.runTraining(ctx, payload); err != nil {
		slog.Error("training run failed", "run_id", payload.RunId, "error", err)
		w.finishRun(ctx, payload, database.TrainingFailed, err.Error())
		_ = task.Ack() // failure is recorded on the run, not retried
		return
	}

	w.finishRun(ctx, payload, database.TrainingDone, "")
	_ = task.Ack()
}

func (w *Worker) runTraining(ctx context.Context, payload TrainTaskPayload) error {
	if err := w.DB.WithContext(ctx).Model(&database.TrainingRun{}).
		Where("id = ?", payload.RunId).
		Update("status", database.TrainingRunning).Error; err != nil {
		return fmt.Errorf("marking run as training: %w", err)
	}

	var records []core.RawRecord
	var err error
	if payload.DatasetPath != "" {
		records, err = dataset.ReadRecords(payload.DatasetPath)
	} else {
		records, err = database.AllRecords(ctx, w.DB)
	}
	if err != nil {
		return err
	}

	artifact, report, err := core.Train(records, w.Options)
	if err != nil {
		return err
	}
	slog.Info("training complete", "run_id", payload.RunId, "accuracy", report.Accuracy, "classes", len(artifact.Labels))

	return core.SaveArtifact(ctx, w.Provider, w.Bucket, payload.ModelKey, artifact)
}

func (w *Worker) finishRun(ctx context.Context, payload TrainTaskPayload, status, errMsg string) {
	updates := map[string]any{
		"status":          status,
		"completion_time": sql.NullTime{Time: time.Now(), Valid: true},
	}
	if errMsg != "" {
		updates["error"] = sql.NullString{String: errMsg, Valid: true}
	}
	if err := w.DB.WithContext(ctx).Model(&database.TrainingRun{}).
		Where("id = ?", payload.RunId).
		Updates(updates).Error; err != nil {
		slog.Error("error updating training run status", "run_id", payload.RunId, "error", err)
	}
}
