package core

import (
	"math"
	"math/rand"
)

// ForestOptions control forest training. Zero values fall back to the
// defaults below.
type ForestOptions struct {
	Trees          int
	MaxDepth       int
	MinSamplesLeaf int
}

const (
	defaultTrees          = 100
	defaultMaxDepth       = 12
	defaultMinSamplesLeaf = 1
)

func (o ForestOptions) withDefaults() ForestOptions {
	if o.Trees <= 0 {
		o.Trees = defaultTrees
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.MinSamplesLeaf <= 0 {
		o.MinSamplesLeaf = defaultMinSamplesLeaf
	}
	return o
}

// Forest is a random forest classifier: bootstrap-sampled trees voting by
// majority. Samples are reweighted by inverse class frequency so skewed
// topic distributions do not drown out rare classes.
type Forest struct {
	Trees      []*Tree
	NumClasses int
}

func trainForest(x [][]float64, y []int, numClasses int, opts ForestOptions, rng *rand.Rand) *Forest {
	opts = opts.withDefaults()

	weights := balancedWeights(y, numClasses)
	numFeatures := int(math.Max(1, math.Sqrt(float64(len(x[0])))))

	forest := &Forest{NumClasses: numClasses, Trees: make([]*Tree, opts.Trees)}
	for t := 0; t < opts.Trees; t++ {
		indices := make([]int, len(x))
		for i := range indices {
			indices[i] = rng.Intn(len(x))
		}
		builder := &treeBuilder{
			x:           x,
			y:           y,
			weights:     weights,
			numClasses:  numClasses,
			maxDepth:    opts.MaxDepth,
			minLeaf:     opts.MinSamplesLeaf,
			numFeatures: numFeatures,
			rng:         rng,
		}
		forest.Trees[t] = &Tree{Root: builder.build(indices, 0)}
	}
	return forest
}

func (f *Forest) Predict(x []float64) int {
	votes := make([]float64, f.NumClasses)
	for _, tree := range f.Trees {
		c := tree.Predict(x)
		if c >= 0 && c < f.NumClasses {
			votes[c]++
		}
	}
	return argmaxf(votes)
}

// balancedWeights assigns each sample weight n / (k * count(class)), the
// inverse-frequency scheme, so every class contributes equal total weight.
func balancedWeights(y []int, numClasses int) []float64 {
	counts := make([]float64, numClasses)
	for _, c := range y {
		counts[c]++
	}
	weights := make([]float64, len(y))
	n := float64(len(y))
	k := float64(numClasses)
	for i, c := range y {
		weights[i] = n / (k * counts[c])
	}
	return weights
}
