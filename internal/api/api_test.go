package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	backend "coach-backend/internal/api"
	"coach-backend/internal/content"
	"coach-backend/internal/core"
	"coach-backend/internal/database"
	"coach-backend/internal/messaging"
	"coach-backend/internal/recommend"
	"coach-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createDB(t *testing.T, records ...core.RawRecord) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())
	require.NoError(t, database.IngestRecords(context.Background(), db, records))

	return db
}

func createRouter(t *testing.T, db *gorm.DB) (chi.Router, *messaging.InMemoryQueue) {
	t.Helper()
	queue := messaging.NewInMemoryQueue()
	recommender := recommend.NewRecommender(db, nil, content.Default())
	service := backend.NewCoachService(db, queue, recommender, false, "/data/gps_performance.csv", "weakness_classifier.bin")

	router := chi.NewRouter()
	service.AddRoutes(router)
	return router, queue
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecommendEndpoint(t *testing.T) {
	db := createDB(t, core.RawRecord{GPId: "GP001", ProductType: "loan", Attempts: "10", Successes: "2", LastWeakTopic: "loan_closing_technique"})
	router, _ := createRouter(t, db)

	rec := postJSON(t, router, "/recommend", api.RecommendRequest{GPId: "GP001", ProductType: "loan"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Video)
	assert.NotEmpty(t, response.Tip)
	assert.NotEmpty(t, response.NextStep)
}

func TestRecommendEndpointMissingFields(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	rec := postJSON(t, router, "/recommend", api.RecommendRequest{GPId: "GP001"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = postJSON(t, router, "/recommend", api.RecommendRequest{ProductType: "loan"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecommendEndpointBadBody(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendQueryEndpoint(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	req := httptest.NewRequest(http.MethodGet, "/recommend?gp_id=GP001&product_type=loan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Video)
}

func TestSubmitAndGetTrainingRun(t *testing.T) {
	db := createDB(t)
	router, queue := createRouter(t, db)

	rec := postJSON(t, router, "/train", api.TrainRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	var submit api.TrainSubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submit))
	assert.NotEqual(t, uuid.Nil, submit.RunId)

	// The task landed on the queue with the server's configured paths.
	task := <-queue.Tasks()
	var payload messaging.TrainTaskPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, submit.RunId, payload.RunId)
	assert.Equal(t, "/data/gps_performance.csv", payload.DatasetPath)
	assert.Equal(t, "weakness_classifier.bin", payload.ModelKey)

	req := httptest.NewRequest(http.MethodGet, "/train/"+submit.RunId.String(), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	assert.Equal(t, http.StatusOK, getRec.Code)
	var run api.TrainingRun
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &run))
	assert.Equal(t, submit.RunId, run.RunId)
	assert.Equal(t, database.TrainingQueued, run.Status)
}

func TestGetTrainingRunNotFound(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	req := httptest.NewRequest(http.MethodGet, "/train/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrainingRunBadId(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	req := httptest.NewRequest(http.MethodGet, "/train/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	db := createDB(t, core.RawRecord{GPId: "GP001", ProductType: "loan", Attempts: "10", Successes: "2", LastWeakTopic: "x"})
	router, _ := createRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.False(t, health.ModelLoaded)
	assert.EqualValues(t, 1, health.Records)
}

func TestTopicsEndpoint(t *testing.T) {
	router, _ := createRouter(t, createDB(t))

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var topics api.TopicsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	assert.Contains(t, topics.Topics, "loan_closing_technique")
	assert.NotContains(t, topics.Topics, content.DefaultKey)
}
