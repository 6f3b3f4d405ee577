// Package recommend composes performance lookup, weakness prediction and the
// content catalog into a single best-effort recommendation.
package recommend

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"

	"coach-backend/internal/content"
	"coach-backend/internal/core"
	"coach-backend/internal/database"
	"coach-backend/pkg/api"

	"gorm.io/gorm"
)

// Predictor produces a weak-topic label for one observation. ok is false
// when no prediction is available. *core.Artifact satisfies this.
type Predictor interface {
	Predict(productType string, attempts, successes int) (string, bool)
}

// Recommender is the recommendation orchestrator. The predictor is optional:
// when nil (no trained model) every request resolves by product type. All
// fields are set at construction and never mutated, so a single Recommender
// serves concurrent requests without locking.
type Recommender struct {
	db        *gorm.DB
	predictor Predictor
	catalog   content.Catalog
}

func NewRecommender(db *gorm.DB, predictor Predictor, catalog content.Catalog) *Recommender {
	return &Recommender{db: db, predictor: predictor, catalog: catalog}
}

// Recommend returns coaching content for the given GP and product type. It
// degrades instead of failing: no historical record, no model, or an
// out-of-vocabulary prediction each fall through to the next rule, ending at
// the catalog's default group. It never returns an empty recommendation.
func (r *Recommender) Recommend(ctx context.Context, gpID, productType string) api.Recommendation {
	key := core.NormalizeProductType(productType)

	if r.predictor != nil {
		if topic, ok := r.predictTopic(ctx, gpID, key); ok {
			key = topic
		}
	}

	entries := r.catalog.Resolve(key)
	selected := entries[rand.Intn(len(entries))]

	return api.Recommendation{
		Video:    selected.Video,
		Tip:      selected.Tip,
		NextStep: selected.NextStep,
	}
}

// Topics lists the catalog's topic keys, sorted for stable output.
func (r *Recommender) Topics() []string {
	topics := r.catalog.Topics()
	sort.Strings(topics)
	return topics
}

// predictTopic runs lookup then inference. The prediction is only used when
// the predicted topic has its own catalog group; an unknown label falls back
// to the product type.
func (r *Recommender) predictTopic(ctx context.Context, gpID, productType string) (string, bool) {
	attempts, successes, found, err := database.LatestPerformance(ctx, r.db, gpID, productType)
	if err != nil {
		slog.Warn("performance lookup failed, falling back to product type", "gp_id", gpID, "product_type", productType, "error", err)
		return "", false
	}
	if !found {
		return "", false
	}

	topic, ok := r.predictor.Predict(productType, attempts, successes)
	if !ok {
		return "", false
	}
	if !r.catalog.Has(topic) {
		slog.Info("predicted topic has no catalog entry, falling back to product type", "topic", topic, "product_type", productType)
		return "", false
	}
	return topic, true
}
