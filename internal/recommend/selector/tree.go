// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

import (
	"context"
	"fmt"
	"sort"
)

// Tree is a binary CART classifier using Gini impurity. Splits are
// axis-aligned at midpoints between consecutive distinct feature values; a
// row goes left when its value is at most the threshold.
type Tree struct {
	// MaxDepth bounds the depth of the tree. The root is depth 0.
	MaxDepth int

	// MinSamplesSplit is the minimum node size that may be split.
	MinSamplesSplit int

	root  *treeNode
	nodes int
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode

	// prob is the fraction of class 1 among the node's training rows.
	prob float64
	leaf bool
}

// NewTree returns an untrained tree.
func NewTree(maxDepth int) *Tree {
	return &Tree{MaxDepth: maxDepth, MinSamplesSplit: 2}
}

// Name implements Scorer.
func (t *Tree) Name() string { return ModelDecisionTree }

// Nodes returns the number of nodes in the trained tree.
func (t *Tree) Nodes() int { return t.nodes }

// Fit implements Scorer.
func (t *Tree) Fit(ctx context.Context, x [][]float64, y []int) error {
	if len(x) == 0 {
		return ErrNoTrainingData
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrTrainingFailed, len(x), len(y))
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrTrainingFailed, i, len(row), width)
		}
	}
	if singleClass(y) {
		return ErrSingleClass
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}

	t.nodes = 0
	root, err := t.build(ctx, x, y, idx, 0)
	if err != nil {
		return err
	}
	t.root = root
	return nil
}

func (t *Tree) build(ctx context.Context, x [][]float64, y []int, idx []int, depth int) (*treeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.nodes++

	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	node := &treeNode{prob: float64(pos) / float64(len(idx)), leaf: true}

	if depth >= t.MaxDepth || len(idx) < t.MinSamplesSplit || pos == 0 || pos == len(idx) {
		return node, nil
	}

	feature, threshold, ok := bestSplit(x, y, idx, pos)
	if !ok {
		return node, nil
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l, err := t.build(ctx, x, y, left, depth+1)
	if err != nil {
		return nil, err
	}
	r, err := t.build(ctx, x, y, right, depth+1)
	if err != nil {
		return nil, err
	}

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left, node.right = l, r
	return node, nil
}

// bestSplit finds the split with the lowest weighted Gini impurity. Ties keep
// the first candidate in feature, then threshold, order.
func bestSplit(x [][]float64, y []int, idx []int, pos int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	best := 0.0
	sorted := make([]int, n)

	for f := range x[idx[0]] {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool { return x[sorted[a]][f] < x[sorted[b]][f] })

		leftPos := 0
		for k := 0; k < n-1; k++ {
			leftPos += y[sorted[k]]
			cur, next := x[sorted[k]][f], x[sorted[k+1]][f]
			if cur == next {
				continue
			}
			nl := k + 1
			nr := n - nl
			impurity := (float64(nl)*gini(leftPos, nl) + float64(nr)*gini(pos-leftPos, nr)) / float64(n)
			if !ok || impurity < best {
				best = impurity
				feature = f
				threshold = cur + (next-cur)/2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}

// Probability implements Scorer. An untrained tree returns 0.
func (t *Tree) Probability(row []float64) float64 {
	node := t.root
	if node == nil {
		return 0
	}
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.prob
}

// Predict implements Scorer.
func (t *Tree) Predict(row []float64) int {
	if t.Probability(row) > 0.5 {
		return 1
	}
	return 0
}

func singleClass(y []int) bool {
	for _, v := range y[1:] {
		if v != y[0] {
			return false
		}
	}
	return true
}
