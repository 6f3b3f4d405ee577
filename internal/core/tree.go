package core

import (
	"math/rand"
	"sort"
)

// Node is one decision node. Exported fields so the artifact encoder can
// walk the tree.
type Node struct {
	Leaf      bool
	Class     int
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
}

// Tree is a single CART classification tree trained on weighted samples.
type Tree struct {
	Root *Node
}

func (t *Tree) Predict(x []float64) int {
	n := t.Root
	for n != nil && !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	if n == nil {
		return 0
	}
	return n.Class
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	weights     []float64
	numClasses  int
	maxDepth    int
	minLeaf     int
	numFeatures int // features considered per split
	rng         *rand.Rand
}

func (b *treeBuilder) build(indices []int, depth int) *Node {
	counts := b.classWeights(indices)
	if depth >= b.maxDepth || len(indices) < 2*b.minLeaf || isPure(counts) {
		return &Node{Leaf: true, Class: argmaxf(counts)}
	}

	feature, threshold, ok := b.bestSplit(indices, counts)
	if !ok {
		return &Node{Leaf: true, Class: argmaxf(counts)}
	}

	var left, right []int
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		return &Node{Leaf: true, Class: argmaxf(counts)}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

// bestSplit scans a random subset of features for the threshold with the
// lowest weighted gini impurity.
func (b *treeBuilder) bestSplit(indices []int, parentCounts []float64) (int, float64, bool) {
	total := len(b.x[0])
	features := b.rng.Perm(total)[:min(b.numFeatures, total)]

	bestGini := gini(parentCounts)
	bestFeature, bestThreshold := -1, 0.0

	values := make([]float64, 0, len(indices))
	for _, f := range features {
		values = values[:0]
		for _, i := range indices {
			values = append(values, b.x[i][f])
		}
		sort.Float64s(values)

		for vi := 1; vi < len(values); vi++ {
			if values[vi] == values[vi-1] {
				continue
			}
			threshold := (values[vi] + values[vi-1]) / 2

			leftCounts := make([]float64, b.numClasses)
			rightCounts := make([]float64, b.numClasses)
			var leftTotal, rightTotal float64
			for _, i := range indices {
				if b.x[i][f] <= threshold {
					leftCounts[b.y[i]] += b.weights[i]
					leftTotal += b.weights[i]
				} else {
					rightCounts[b.y[i]] += b.weights[i]
					rightTotal += b.weights[i]
				}
			}
			if leftTotal == 0 || rightTotal == 0 {
				continue
			}
			weighted := (leftTotal*gini(leftCounts) + rightTotal*gini(rightCounts)) / (leftTotal + rightTotal)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) classWeights(indices []int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, i := range indices {
		counts[b.y[i]] += b.weights[i]
	}
	return counts
}

func gini(counts []float64) float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []float64) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func argmaxf(values []float64) int {
	best, bestVal := 0, values[0]
	for i, v := range values {
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}
