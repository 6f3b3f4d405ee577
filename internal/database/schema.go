package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PerformanceRecord is one ingested row of the historical dataset. The
// auto-increment Id preserves dataset order, which is what "most recent
// record" means for lookups. Attempts and Successes stay raw text exactly as
// read from the dataset; coercion happens at lookup so one bad cell turns
// into a lookup miss instead of an ingest failure.
type PerformanceRecord struct {
	Id uint `gorm:"primaryKey;autoIncrement"`

	GPId        string `gorm:"column:gp_id;size:64;index:idx_gp_product"`
	ProductType string `gorm:"size:64;index:idx_gp_product"`

	Attempts  string
	Successes string

	LastWeakTopic string `gorm:"size:128"`
}

const (
	TrainingQueued  string = "QUEUED"
	TrainingRunning string = "TRAINING"
	TrainingDone    string = "TRAINED"
	TrainingFailed  string = "FAILED"
)

// TrainingRun tracks one training job from submission to completion.
type TrainingRun struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Status      string `gorm:"size:20;not null"`
	DatasetPath string
	ModelKey    string

	Error sql.NullString

	CreationTime   time.Time
	CompletionTime sql.NullTime
}
