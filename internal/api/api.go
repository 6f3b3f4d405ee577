package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"coach-backend/internal/database"
	"coach-backend/internal/messaging"
	"coach-backend/internal/recommend"
	"coach-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachService struct {
	db          *gorm.DB
	publisher   messaging.Publisher
	recommender *recommend.Recommender
	modelLoaded bool
	datasetPath string
	modelKey    string
}

func NewCoachService(db *gorm.DB, publisher messaging.Publisher, recommender *recommend.Recommender, modelLoaded bool, datasetPath, modelKey string) *CoachService {
	return &CoachService{
		db:          db,
		publisher:   publisher,
		recommender: recommender,
		modelLoaded: modelLoaded,
		datasetPath: datasetPath,
		modelKey:    modelKey,
	}
}

func (s *CoachService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(s.Health))
	r.Route("/recommend", func(r chi.Router) {
		r.Post("/", RestHandler(s.Recommend))
		r.Get("/", RestHandler(s.RecommendQuery))
	})
	r.Route("/train", func(r chi.Router) {
		r.Post("/", RestHandler(s.SubmitTrainingRun))
		r.Get("/{run_id}", RestHandler(s.GetTrainingRun))
	})
	r.Get("/topics", RestHandler(s.ListTopics))
}

func (s *CoachService) Health(r *http.Request) (any, error) {
	records, err := database.CountRecords(r.Context(), s.db)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error counting performance records")
	}
	return api.HealthResponse{ModelLoaded: s.modelLoaded, Records: records}, nil
}

func (s *CoachService) Recommend(r *http.Request) (any, error) {
	req, err := ParseRequest[api.RecommendRequest](r)
	if err != nil {
		return nil, err
	}
	return s.recommendFor(r, req)
}

func (s *CoachService) RecommendQuery(r *http.Request) (any, error) {
	req, err := ParseRequestQueryParams[api.RecommendRequest](r)
	if err != nil {
		return nil, err
	}
	return s.recommendFor(r, req)
}

// recommendFor owns presence validation; the recommender itself never
// rejects input.
func (s *CoachService) recommendFor(r *http.Request, req api.RecommendRequest) (any, error) {
	if req.GPId == "" || req.ProductType == "" {
		return nil, CodedErrorf(http.StatusUnprocessableEntity, "missing required fields: gp_id, product_type")
	}
	return s.recommender.Recommend(r.Context(), req.GPId, req.ProductType), nil
}

func (s *CoachService) SubmitTrainingRun(r *http.Request) (any, error) {
	req, err := ParseRequest[api.TrainRequest](r)
	if err != nil {
		return nil, err
	}

	datasetPath := req.DatasetPath
	if datasetPath == "" {
		datasetPath = s.datasetPath
	}

	ctx := r.Context()

	run := &database.TrainingRun{
		Id:           uuid.New(),
		Status:       database.TrainingQueued,
		DatasetPath:  datasetPath,
		ModelKey:     s.modelKey,
		CreationTime: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		slog.Error("error creating training run", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to create training run")
	}

	payload := messaging.TrainTaskPayload{
		RunId:       run.Id,
		DatasetPath: datasetPath,
		ModelKey:    s.modelKey,
	}
	if err := s.publisher.PublishTrainTask(ctx, payload); err != nil {
		slog.Error("error publishing training task", "run_id", run.Id, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to queue training task")
	}

	slog.Info("submitted training run", "run_id", run.Id)
	return api.TrainSubmitResponse{Message: "Training run submitted", RunId: run.Id}, nil
}

func (s *CoachService) GetTrainingRun(r *http.Request) (any, error) {
	runId, err := URLParamUUID(r, "run_id")
	if err != nil {
		return nil, err
	}

	var run database.TrainingRun
	if err := s.db.WithContext(r.Context()).First(&run, "id = ?", runId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "training run not found")
		}
		slog.Error("error getting training run", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving training run")
	}

	res := api.TrainingRun{
		RunId:        run.Id,
		Status:       run.Status,
		DatasetPath:  run.DatasetPath,
		CreationTime: run.CreationTime,
	}
	if run.Error.Valid {
		res.Error = run.Error.String
	}
	if run.CompletionTime.Valid {
		t := run.CompletionTime.Time
		res.CompletionTime = &t
	}
	return res, nil
}

func (s *CoachService) ListTopics(r *http.Request) (any, error) {
	return api.TopicsResponse{Topics: s.recommender.Topics()}, nil
}
