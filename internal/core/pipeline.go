package core

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes numerical features to zero mean and unit
// variance using statistics from the fit partition only.
type StandardScaler struct {
	Mean   []float64
	Stddev []float64
}

func (s *StandardScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	n := len(rows[0])
	s.Mean = make([]float64, n)
	s.Stddev = make([]float64, n)
	col := make([]float64, len(rows))
	for j := 0; j < n; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Stddev[j] = stat.StdDev(col, nil)
		// A constant column has zero spread; dividing by 1 leaves it centered.
		if s.Stddev[j] == 0 || len(rows) < 2 {
			s.Stddev[j] = 1
		}
	}
}

func (s *StandardScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		if j < len(s.Mean) {
			out[j] = (v - s.Mean[j]) / s.Stddev[j]
		} else {
			out[j] = v
		}
	}
	return out
}

// OneHotEncoder encodes a categorical value as an indicator vector. Category
// order is the order values were first observed during Fit. Values unseen at
// fit time encode as all zeros rather than an error, so a product type the
// model never saw degrades to "no category signal" instead of failing the
// prediction.
type OneHotEncoder struct {
	Categories []string
}

func (e *OneHotEncoder) Fit(values []string) {
	seen := make(map[string]struct{}, len(values))
	e.Categories = e.Categories[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		e.Categories = append(e.Categories, v)
	}
}

func (e *OneHotEncoder) Transform(value string) []float64 {
	out := make([]float64, len(e.Categories))
	for i, c := range e.Categories {
		if c == value {
			out[i] = 1
			break
		}
	}
	return out
}

// Pipeline is the fitted preprocessor + classifier pair. Feature layout is
// the scaled numerical block followed by the one-hot block; both fit and
// predict must build vectors in that order.
type Pipeline struct {
	Scaler  StandardScaler
	Encoder OneHotEncoder
	Forest  *Forest
}

func (p *Pipeline) vector(ex Example) []float64 {
	num := p.Scaler.Transform([]float64{ex.Attempts, ex.Successes})
	return append(num, p.Encoder.Transform(NormalizeProductType(ex.ProductType))...)
}

// Fit fits the preprocessors and trains the forest on the given examples.
// Labels must already be encoded as dense indices 0..numClasses-1.
func (p *Pipeline) Fit(examples []Example, labels []int, numClasses int, opts ForestOptions, rng *rand.Rand) error {
	if len(examples) == 0 {
		return fmt.Errorf("cannot fit pipeline on zero examples")
	}

	numRows := make([][]float64, len(examples))
	cats := make([]string, len(examples))
	for i, ex := range examples {
		numRows[i] = []float64{ex.Attempts, ex.Successes}
		cats[i] = NormalizeProductType(ex.ProductType)
	}
	p.Scaler.Fit(numRows)
	p.Encoder.Fit(cats)

	vectors := make([][]float64, len(examples))
	for i, ex := range examples {
		vectors[i] = p.vector(ex)
	}

	p.Forest = trainForest(vectors, labels, numClasses, opts, rng)
	return nil
}

// Predict returns the class index for a single example. The boolean is false
// when the pipeline has no trained classifier.
func (p *Pipeline) Predict(ex Example) (int, bool) {
	if p == nil || p.Forest == nil || len(p.Forest.Trees) == 0 {
		return 0, false
	}
	return p.Forest.Predict(p.vector(ex)), true
}
