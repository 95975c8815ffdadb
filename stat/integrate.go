// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import "math"

func one(float64) float64 { return 1 }

func identity(x float64) float64 { return x }

// SumOf integrates f over the recorded observations between lo and hi,
// evaluating f once per bucket at the representative and weighting by the
// bucket count. Use math.Inf(-1) and math.Inf(1) to leave a side open.
//
// Buckets straddling a finite bound contribute proportionally: the part of
// the bucket outside [lo, hi], measured on the real line, is subtracted.
// The zero-width zero bucket counts half when a bound lands inside it, so
// a split at zero puts exactly half the zero bucket on each side.
func (d *Distribution) SumOf(f func(float64) float64, lo, hi float64) float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return 0
	}
	keys := d.sortedKeys()
	if len(keys) == 0 {
		return 0
	}

	start := 0
	if !math.IsInf(lo, -1) {
		start = lowerBoundGE(keys, d.round(lo))
	}
	end := len(keys) - 1
	if !math.IsInf(hi, 1) {
		end = upperBoundLE(keys, d.round(hi))
	}

	var sum float64
	for i := start; i <= end; i++ {
		sum += f(keys[i]) * float64(d.buckets[keys[i]])
	}
	if !math.IsInf(lo, -1) {
		sum -= d.outsideLow(f, lo)
	}
	if !math.IsInf(hi, 1) {
		sum -= d.outsideHigh(f, hi)
	}
	return sum
}

// outsideLow is the contribution of the bucket containing lo that falls
// below lo.
func (d *Distribution) outsideLow(f func(float64) float64, lo float64) float64 {
	key := d.round(lo)
	count, ok := d.buckets[key]
	if !ok {
		return 0
	}
	lower, upper := d.edges(lo)
	part := 0.5
	if width := upper - lower; width > 0 {
		part = (lo - lower) / width
	}
	return float64(count) * f(key) * part
}

// outsideHigh is the contribution of the bucket containing hi that falls
// above hi.
func (d *Distribution) outsideHigh(f func(float64) float64, hi float64) float64 {
	key := d.round(hi)
	count, ok := d.buckets[key]
	if !ok {
		return 0
	}
	lower, upper := d.edges(hi)
	part := 0.5
	if width := upper - lower; width > 0 {
		part = (upper - hi) / width
	}
	return float64(count) * f(key) * part
}

// MeanOf computes the count-weighted average of f between lo and hi.
// It reports false when no observations fall inside the bounds.
func (d *Distribution) MeanOf(f func(float64) float64, lo, hi float64) (float64, bool) {
	weight := d.SumOf(one, lo, hi)
	if weight <= 0 {
		return 0, false
	}
	return d.SumOf(f, lo, hi) / weight, true
}

// CDF returns the fraction of observations at or below x. It reports
// false for an empty distribution.
func (d *Distribution) CDF(x float64) (float64, bool) {
	if d.total == 0 {
		return 0, false
	}
	return d.SumOf(one, math.Inf(-1), x) / float64(d.total), true
}
