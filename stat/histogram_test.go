// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramRejectsBadCutPoints(t *testing.T) {
	d := NewDefault()
	require.NoError(t, d.Add(1, 2, 3))

	testCases := []struct {
		name string
		cuts []float64
	}{
		{name: "empty", cuts: nil},
		{name: "NaN", cuts: []float64{1, math.NaN(), 3}},
		{name: "descending", cuts: []float64{3, 2}},
		{name: "duplicate", cuts: []float64{2, 2}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			bins, err := d.Histogram(testCase.cuts)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, bins)
		})
	}
}

func TestHistogramConservation(t *testing.T) {
	d := NewDefault()
	require.NoError(t, d.Add(0.2, 0.9, 1, 1, 3, 7, 12, 40, 41, 95, 120, 500))

	lo, hi, ok := d.FindBoundaries()
	require.True(t, ok)
	bins, err := d.Histogram([]float64{lo, 1, 5, 17, 80, hi})
	require.NoError(t, err)

	var total float64
	for _, bin := range bins {
		total += bin.Count
	}
	assert.InDelta(t, float64(d.Count()), total, 1e-9)

	// Consecutive bins share their boundary exactly.
	for i := 1; i < len(bins); i++ {
		assert.Equal(t, bins[i-1].Right, bins[i].Left)
	}
	assert.True(t, math.IsInf(bins[0].Left, -1))
}

func TestHistogramNIsRoughlyLevelOnUniformData(t *testing.T) {
	d := NewDefault()
	require.NoError(t, d.Add(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))

	lo, hi, ok := d.FindBoundaries()
	require.True(t, ok)
	assert.LessOrEqual(t, lo, 1.0)
	assert.GreaterOrEqual(t, hi, 10.0)

	bins, err := d.HistogramN(5)
	require.NoError(t, err)
	require.Len(t, bins, 5)

	// Ten uniform observations over five equal intervals put about two in
	// each; bucket interpolation at the cut points smears a fraction of a
	// count between neighbors.
	var mean, m2 float64
	for _, bin := range bins {
		mean += bin.Count / 5
	}
	for _, bin := range bins {
		assert.InDelta(t, 2.0, bin.Count, 0.5)
		m2 += (bin.Count - mean) * (bin.Count - mean) / 5
	}
	assert.InDelta(t, 2.0, mean, 1e-9) // conservation keeps the average exact
	assert.Less(t, math.Sqrt(m2), 0.4)

	// The generated cut points span the occupied range.
	assert.Equal(t, hi, bins[len(bins)-1].Right)
}

func TestHistogramNDegenerate(t *testing.T) {
	d := NewDefault()

	_, err := d.HistogramN(2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bins, err := d.HistogramN(5)
	require.NoError(t, err)
	assert.Nil(t, bins) // empty distribution

	// A lone zero bucket has no width to span.
	zeroOnly, err := New(Config{Base: 2, ZeroThreshold: 0.5})
	require.NoError(t, err)
	require.NoError(t, zeroOnly.Add(0, 0.1))
	bins, err = zeroOnly.HistogramN(5)
	require.NoError(t, err)
	assert.Nil(t, bins)
}

func TestHistogramRepeatedCallsAgree(t *testing.T) {
	d := NewDefault()
	require.NoError(t, d.Add(1, 5, 5, 9, 30))

	cuts := []float64{1, 10, 100}
	first, err := d.Histogram(cuts)
	require.NoError(t, err)
	second, err := d.Histogram(cuts)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))

	other, err := d.Histogram([]float64{2, 20})
	require.NoError(t, err)
	assert.Len(t, other, 2)

	// The earlier cut points still answer identically after the switch.
	third, err := d.Histogram(cuts)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, third, cmpopts.EquateApprox(0, 1e-12)))
}

func TestFindBoundaries(t *testing.T) {
	d, err := New(Config{Base: 2})
	require.NoError(t, err)

	_, _, ok := d.FindBoundaries()
	assert.False(t, ok)

	require.NoError(t, d.Add(1, 8))
	lo, hi, ok := d.FindBoundaries()
	require.True(t, ok)
	assert.InDelta(t, 2.0/3, lo, 1e-12)  // lower edge of bucket 1
	assert.InDelta(t, 32.0/3, hi, 1e-12) // upper edge of bucket 8

	// A negative minimum flips its edge below the representative.
	require.NoError(t, d.Add(-8))
	lo, _, ok = d.FindBoundaries()
	require.True(t, ok)
	assert.InDelta(t, -32.0/3, lo, 1e-12)
}
