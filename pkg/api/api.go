// Package api defines the request and response types shared between the
// service and its clients.
package api

import (
	"time"

	"github.com/google/uuid"
)

type RecommendRequest struct {
	GPId        string `json:"gp_id" schema:"gp_id"`
	ProductType string `json:"product_type" schema:"product_type"`
}

// Recommendation is the coaching content returned for one request. All three
// fields are always populated.
type Recommendation struct {
	Video    string `json:"video"`
	Tip      string `json:"tip"`
	NextStep string `json:"next_step"`
}

type TrainRequest struct {
	// DatasetPath overrides the server's configured dataset; optional.
	DatasetPath string `json:"dataset_path,omitempty"`
}

type TrainSubmitResponse struct {
	Message string    `json:"message"`
	RunId   uuid.UUID `json:"run_id"`
}

type TrainingRun struct {
	RunId          uuid.UUID  `json:"run_id"`
	Status         string     `json:"status"`
	DatasetPath    string     `json:"dataset_path,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreationTime   time.Time  `json:"creation_time"`
	CompletionTime *time.Time `json:"completion_time,omitempty"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type HealthResponse struct {
	ModelLoaded bool  `json:"model_loaded"`
	Records     int64 `json:"records"`
}
