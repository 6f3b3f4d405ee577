package core_test

import (
	"testing"

	"coach-backend/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScaler(t *testing.T) {
	var scaler core.StandardScaler
	scaler.Fit([][]float64{{1, 10}, {2, 20}, {3, 30}})

	out := scaler.Transform([]float64{2, 20})
	assert.InDelta(t, 0, out[0], 1e-9)
	assert.InDelta(t, 0, out[1], 1e-9)

	// Symmetric inputs standardize symmetrically.
	lo := scaler.Transform([]float64{1, 10})
	hi := scaler.Transform([]float64{3, 30})
	assert.InDelta(t, -lo[0], hi[0], 1e-9)
	assert.InDelta(t, -lo[1], hi[1], 1e-9)
}

func TestStandardScalerConstantColumn(t *testing.T) {
	var scaler core.StandardScaler
	scaler.Fit([][]float64{{5, 1}, {5, 2}, {5, 3}})

	// Zero-variance column must not divide by zero.
	out := scaler.Transform([]float64{5, 2})
	assert.InDelta(t, 0, out[0], 1e-9)
}

func TestOneHotEncoderFirstObservedOrder(t *testing.T) {
	var enc core.OneHotEncoder
	enc.Fit([]string{"loan", "insurance", "loan", "credit_card", "insurance"})

	require.Equal(t, []string{"loan", "insurance", "credit_card"}, enc.Categories)
	assert.Equal(t, []float64{0, 1, 0}, enc.Transform("insurance"))
}

func TestOneHotEncoderUnseenCategoryIsAllZero(t *testing.T) {
	var enc core.OneHotEncoder
	enc.Fit([]string{"loan", "insurance"})

	assert.Equal(t, []float64{0, 0}, enc.Transform("mortgage"))
}

func TestPipelinePredictWithoutFit(t *testing.T) {
	p := &core.Pipeline{}
	_, ok := p.Predict(core.Example{ProductType: "loan", Attempts: 1, Successes: 1})
	assert.False(t, ok)
}
