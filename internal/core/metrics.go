package core

import (
	"fmt"
	"strings"
)

// ClassMetrics are the held-out diagnostics for one topic label.
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is the classification report computed on the test partition after
// training. Diagnostic only; nothing downstream consumes it.
type Report struct {
	Classes   []ClassMetrics `json:"classes"`
	Accuracy  float64        `json:"accuracy"`
	TestRows  int            `json:"test_rows"`
	TrainRows int            `json:"train_rows"`
}

func classificationReport(actual, predicted []int, labels []string) *Report {
	report := &Report{TestRows: len(actual)}

	truePos := make([]int, len(labels))
	falsePos := make([]int, len(labels))
	falseNeg := make([]int, len(labels))
	support := make([]int, len(labels))

	correct := 0
	for i, a := range actual {
		p := predicted[i]
		support[a]++
		if p == a {
			truePos[a]++
			correct++
		} else {
			falseNeg[a]++
			if p >= 0 && p < len(labels) {
				falsePos[p]++
			}
		}
	}
	if len(actual) > 0 {
		report.Accuracy = float64(correct) / float64(len(actual))
	}

	for c, label := range labels {
		m := ClassMetrics{Label: label, Support: support[c]}
		if truePos[c]+falsePos[c] > 0 {
			m.Precision = float64(truePos[c]) / float64(truePos[c]+falsePos[c])
		}
		if truePos[c]+falseNeg[c] > 0 {
			m.Recall = float64(truePos[c]) / float64(truePos[c]+falseNeg[c])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes = append(report.Classes, m)
	}

	return report
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-40s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	for _, m := range r.Classes {
		fmt.Fprintf(&b, "%-40s %9.2f %9.2f %9.2f %9d\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "\naccuracy %.2f on %d test rows (%d train rows)\n", r.Accuracy, r.TestRows, r.TrainRows)
	return b.String()
}
