package core

import "strings"

// Feature and target columns of the historical performance dataset. These
// names are shared between the CSV reader, the trainer, and the predictor;
// changing them invalidates previously saved artifacts.
const (
	ColumnGPId          = "gp_id"
	ColumnProductType   = "product_type"
	ColumnAttempts      = "attempts"
	ColumnSuccesses     = "successes"
	ColumnLastWeakTopic = "last_weak_topic"
)

// NormalizeProductType is the single place product types are normalized.
// The model is trained on lowercase product types, so every consumer must
// route raw input through here before lookup or prediction.
func NormalizeProductType(productType string) string {
	return strings.ToLower(strings.TrimSpace(productType))
}

// Example is one observation routed through the pipeline: the three feature
// values, without the target.
type Example struct {
	ProductType string
	Attempts    float64
	Successes   float64
}
