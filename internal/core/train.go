package core

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// RawRecord is one row of the historical performance dataset as read from
// disk. Numeric fields stay raw text here; coercion happens where the value
// is consumed so a single bad cell degrades that row only.
type RawRecord struct {
	GPId          string
	ProductType   string
	Attempts      string
	Successes     string
	LastWeakTopic string
}

// DataError reports malformed or insufficient training data. It is fatal to
// a training run and is never retried automatically.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "invalid training data: " + e.Reason
}

func DataErrorf(format string, args ...any) error {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

type TrainingOptions struct {
	TestFraction float64
	Seed         int64
	MinRows      int
	Forest       ForestOptions
}

func DefaultTrainingOptions() TrainingOptions {
	return TrainingOptions{TestFraction: 0.2, Seed: 42, MinRows: 10}
}

// Train fits the weakness classifier from historical performance rows and
// returns the artifact together with a held-out classification report.
//
// Rows with a missing value in any required column, or with attempts or
// successes that do not parse as numbers, are dropped before the minimum row
// check. The train/test split is deliberately not stratified by class: the
// expected datasets are small enough that singleton classes would make a
// stratified split fail outright, so an unbalanced random split is preferred
// over a training error.
func Train(records []RawRecord, opts TrainingOptions) (*Artifact, *Report, error) {
	if opts.MinRows <= 0 {
		opts.MinRows = 10
	}
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		opts.TestFraction = 0.2
	}

	if len(records) == 0 {
		return nil, nil, DataErrorf("dataset is empty")
	}

	examples, topics := cleanRecords(records)
	if len(examples) < opts.MinRows {
		return nil, nil, DataErrorf("only %d usable rows after dropping incomplete ones, need at least %d", len(examples), opts.MinRows)
	}

	labels, encoded := encodeLabels(topics)

	rng := rand.New(rand.NewSource(opts.Seed))
	perm := rng.Perm(len(examples))
	testN := int(math.Round(opts.TestFraction * float64(len(examples))))
	if testN >= len(examples) {
		testN = len(examples) - 1
	}

	trainX := make([]Example, 0, len(examples)-testN)
	trainY := make([]int, 0, len(examples)-testN)
	testX := make([]Example, 0, testN)
	testY := make([]int, 0, testN)
	for i, idx := range perm {
		if i < testN {
			testX = append(testX, examples[idx])
			testY = append(testY, encoded[idx])
		} else {
			trainX = append(trainX, examples[idx])
			trainY = append(trainY, encoded[idx])
		}
	}

	pipeline := &Pipeline{}
	if err := pipeline.Fit(trainX, trainY, len(labels), opts.Forest, rng); err != nil {
		return nil, nil, fmt.Errorf("fitting pipeline: %w", err)
	}

	predicted := make([]int, len(testX))
	for i, ex := range testX {
		predicted[i], _ = pipeline.Predict(ex)
	}
	report := classificationReport(testY, predicted, labels)
	report.TrainRows = len(trainX)

	return &Artifact{Pipeline: pipeline, Labels: labels}, report, nil
}

// cleanRecords drops rows missing a required value and coerces numerics.
func cleanRecords(records []RawRecord) ([]Example, []string) {
	var examples []Example
	var topics []string
	for _, r := range records {
		if r.ProductType == "" || r.LastWeakTopic == "" {
			continue
		}
		attempts, err := strconv.ParseFloat(r.Attempts, 64)
		if err != nil {
			continue
		}
		successes, err := strconv.ParseFloat(r.Successes, 64)
		if err != nil {
			continue
		}
		examples = append(examples, Example{
			ProductType: NormalizeProductType(r.ProductType),
			Attempts:    attempts,
			Successes:   successes,
		})
		topics = append(topics, r.LastWeakTopic)
	}
	return examples, topics
}

// encodeLabels assigns dense indices in first-observed order. The returned
// label list is the only way to decode a class index; it is persisted with
// the pipeline for that reason.
func encodeLabels(topics []string) ([]string, []int) {
	index := make(map[string]int)
	var labels []string
	encoded := make([]int, len(topics))
	for i, t := range topics {
		idx, ok := index[t]
		if !ok {
			idx = len(labels)
			index[t] = idx
			labels = append(labels, t)
		}
		encoded[i] = idx
	}
	return labels, encoded
}
