// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package selector

import (
	"math"
	"math/rand"
	"sort"
)

// Split partitions sample indexes into train and test sets.
//
// The test set holds ceil(testSize*n) samples. When both classes have at
// least two members the split is stratified; with a single class it is a
// plain shuffle. When no valid split exists, train and test are both the
// full set and held is false.
func Split(y []int, testSize float64, seed int64) (train, test []int, held bool) {
	n := len(y)
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return all, all, false
	}

	var classes [2][]int
	for i, v := range y {
		classes[v&1] = append(classes[v&1], i)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic split, not security sensitive

	if len(classes[0]) == 0 || len(classes[1]) == 0 {
		rng.Shuffle(n, func(i, j int) { all[i], all[j] = all[j], all[i] })
		test = append(test, all[:nTest]...)
		train = append(train, all[nTest:]...)
		sort.Ints(train)
		sort.Ints(test)
		return train, test, true
	}

	if len(classes[0]) < 2 || len(classes[1]) < 2 || nTest < 2 || nTrain < 2 {
		return all, all, false
	}

	// Allocate test slots proportionally, at least one per class.
	test1 := int(math.Round(float64(nTest) * float64(len(classes[1])) / float64(n)))
	test1 = min(max(test1, 1), len(classes[1])-1, nTest-1)
	test0 := nTest - test1
	if test0 > len(classes[0])-1 {
		return all, all, false
	}

	for c, k := range [2]int{test0, test1} {
		members := classes[c]
		rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		test = append(test, members[:k]...)
		train = append(train, members[k:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, true
}
