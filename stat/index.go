// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import "sort"

// sortedKeys returns the occupied bucket representatives in ascending
// order. The slice is built lazily from the key tree and cached until the
// next mutation; callers must not modify it.
func (d *Distribution) sortedKeys() []float64 {
	if d.cache.keys != nil {
		return d.cache.keys
	}
	keys := make([]float64, 0, len(d.buckets))
	d.keys.Ascend(func(key float64) bool {
		keys = append(keys, key)
		return true
	})
	d.cache.keys = keys
	return keys
}

// cumulative returns running totals of bucket counts aligned with
// sortedKeys: cums[i] is the number of observations at or below key i.
func (d *Distribution) cumulative() []uint64 {
	if d.cache.cums != nil {
		return d.cache.cums
	}
	keys := d.sortedKeys()
	cums := make([]uint64, len(keys))
	var run uint64
	for i, k := range keys {
		run += d.buckets[k]
		cums[i] = run
	}
	d.cache.cums = cums
	return cums
}

// lowerBoundGE returns the index of the first key >= target, or len(sorted)
// when every key is smaller.
func lowerBoundGE(sorted []float64, target float64) int {
	return sort.SearchFloat64s(sorted, target)
}

// upperBoundLE returns the index of the last key <= target, or -1 when
// every key is larger.
func upperBoundLE(sorted []float64, target float64) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] > target }) - 1
}
