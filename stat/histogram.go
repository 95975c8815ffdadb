// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"fmt"
	"math"
	"slices"
)

// Bin is one histogram interval covering [Left, Right). Count may be
// fractional where a bucket straddles a cut point.
type Bin struct {
	Left  float64
	Right float64
	Count float64
}

// Histogram counts observations between consecutive cut points. An
// implicit -Inf is prepended, so the bins are [-Inf, cuts[0]),
// [cuts[0], cuts[1]), and so on. Adjacent bins share their boundary
// exactly: mass of a bucket straddling a cut point splits between the
// two bins in proportion to the bucket span on each side. Cut points
// must be strictly ascending and free of NaNs.
func (d *Distribution) Histogram(cutPoints []float64) ([]Bin, error) {
	if len(cutPoints) == 0 {
		return nil, fmt.Errorf("histogram needs at least one cut point: %w", ErrInvalidArgument)
	}
	for i, c := range cutPoints {
		if math.IsNaN(c) {
			return nil, fmt.Errorf("cut point %d is NaN: %w", i, ErrInvalidArgument)
		}
		if i > 0 && c <= cutPoints[i-1] {
			return nil, fmt.Errorf("cut points must be strictly ascending at %d: %w", i, ErrInvalidArgument)
		}
	}
	if memo := d.cache.hist; memo != nil && slices.Equal(memo.cuts, cutPoints) {
		return slices.Clone(memo.bins), nil
	}

	bins := make([]Bin, len(cutPoints))
	left := math.Inf(-1)
	for i, right := range cutPoints {
		bins[i] = Bin{
			Left:  left,
			Right: right,
			Count: d.SumOf(one, left, right),
		}
		left = right
	}
	d.cache.hist = &histMemo{
		cuts: slices.Clone(cutPoints),
		bins: slices.Clone(bins),
	}
	return bins, nil
}

// HistogramN builds n equal-width bins spanning the occupied range as
// reported by FindBoundaries. It returns nil bins without error when the
// distribution is empty or collapsed to a single point.
func (d *Distribution) HistogramN(n int) ([]Bin, error) {
	if n <= 2 {
		return nil, fmt.Errorf("histogram needs more than two bins, got %d: %w", n, ErrInvalidArgument)
	}
	lo, hi, ok := d.FindBoundaries()
	if !ok || lo >= hi {
		return nil, nil
	}
	width := (hi - lo) / float64(n)
	cuts := make([]float64, n)
	for i := range cuts {
		cuts[i] = lo + width*float64(i+1)
	}
	cuts[n-1] = hi
	return d.Histogram(cuts)
}

// FindBoundaries returns the outer bucket edges of the occupied range. It
// reports false for an empty distribution.
func (d *Distribution) FindBoundaries() (lo, hi float64, ok bool) {
	keys := d.sortedKeys()
	if len(keys) == 0 {
		return 0, 0, false
	}
	lo, _ = d.edges(keys[0])
	_, hi = d.edges(keys[len(keys)-1])
	return lo, hi, true
}
