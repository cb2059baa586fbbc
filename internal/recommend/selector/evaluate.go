// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

// Scores are binary-classification metrics. Undefined ratios are 0.
type Scores struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Evaluate compares predictions against ground truth, both 0/1 labels of
// equal length.
func Evaluate(truth, pred []int) Scores {
	if len(truth) == 0 || len(truth) != len(pred) {
		return Scores{}
	}

	var tp, fp, fn, correct int
	for i := range truth {
		switch {
		case truth[i] == 1 && pred[i] == 1:
			tp++
		case truth[i] == 0 && pred[i] == 1:
			fp++
		case truth[i] == 1 && pred[i] == 0:
			fn++
		}
		if truth[i] == pred[i] {
			correct++
		}
	}

	s := Scores{
		Accuracy:  float64(correct) / float64(len(truth)),
		Precision: ratio(tp, tp+fp),
		Recall:    ratio(tp, tp+fn),
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
