// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"fmt"
	"math"
	"sort"
)

// VarianceKind selects the divisor used by Variance and StdDev.
type VarianceKind int

const (
	// PopulationVariance divides by the observation count.
	PopulationVariance VarianceKind = iota
	// SampleVariance divides by the observation count minus one.
	SampleVariance
)

// Sum returns the approximate sum of all observations.
func (d *Distribution) Sum() float64 {
	if d.cache.sum == nil {
		sum := d.SumOf(identity, math.Inf(-1), math.Inf(1))
		d.cache.sum = &sum
	}
	return *d.cache.sum
}

// SumSquares returns the approximate sum of squared observations.
func (d *Distribution) SumSquares() float64 {
	if d.cache.sumsq == nil {
		sumsq := d.SumOf(func(x float64) float64 { return x * x }, math.Inf(-1), math.Inf(1))
		d.cache.sumsq = &sumsq
	}
	return *d.cache.sumsq
}

// Mean returns the approximate arithmetic mean. It reports false for an
// empty distribution.
func (d *Distribution) Mean() (float64, bool) {
	if d.total == 0 {
		return 0, false
	}
	if d.cache.mean == nil {
		mean := d.Sum() / float64(d.total)
		d.cache.mean = &mean
	}
	return *d.cache.mean, true
}

// Variance returns the approximate variance with the requested divisor.
// It returns 0 when the divisor would be non-positive, and clamps small
// negative results from cancellation to 0.
func (d *Distribution) Variance(kind VarianceKind) float64 {
	slot := &d.cache.varPop
	if kind == SampleVariance {
		slot = &d.cache.varSmp
	}
	if *slot != nil {
		return **slot
	}

	div := float64(d.total)
	if kind == SampleVariance {
		div--
	}
	var v float64
	if div > 0 {
		mean, _ := d.Mean()
		v = (d.SumSquares() - float64(d.total)*mean*mean) / div
		if v < 0 {
			v = 0
		}
	}
	*slot = &v
	return v
}

// StdDev returns the approximate standard deviation with the requested
// divisor. It reports false for an empty distribution.
func (d *Distribution) StdDev(kind VarianceKind) (float64, bool) {
	if d.total == 0 {
		return 0, false
	}
	return math.Sqrt(d.Variance(kind)), true
}

// Min returns the representative of the lowest occupied bucket. It
// reports false for an empty distribution.
func (d *Distribution) Min() (float64, bool) {
	keys := d.sortedKeys()
	if len(keys) == 0 {
		return 0, false
	}
	return keys[0], true
}

// Max returns the representative of the highest occupied bucket. It
// reports false for an empty distribution.
func (d *Distribution) Max() (float64, bool) {
	keys := d.sortedKeys()
	if len(keys) == 0 {
		return 0, false
	}
	return keys[len(keys)-1], true
}

// Percentile returns the representative of the bucket holding the
// observation at rank p*count/100. It reports false when that rank is
// below one, which covers the empty distribution, and fails when p is
// outside [0, 100].
func (d *Distribution) Percentile(p float64) (float64, bool, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, false, fmt.Errorf("percentile %v outside [0, 100]: %w", p, ErrInvalidArgument)
	}
	rank := p * float64(d.total) / 100
	if rank < 1 {
		return 0, false, nil
	}
	if v, ok := d.cache.percentiles.Get(p); ok {
		return v.(float64), true, nil
	}

	keys := d.sortedKeys()
	cums := d.cumulative()
	idx := sort.Search(len(cums), func(i int) bool { return float64(cums[i]) >= rank })
	if idx == len(keys) {
		idx = len(keys) - 1
	}
	d.cache.percentiles.Add(p, keys[idx])
	return keys[idx], true, nil
}

// Quantile returns the q-th quartile, so Quantile(2) is the median.
// It fails when q is outside [0, 4].
func (d *Distribution) Quantile(q int) (float64, bool, error) {
	if q < 0 || q > 4 {
		return 0, false, fmt.Errorf("quantile %d outside [0, 4]: %w", q, ErrInvalidArgument)
	}
	return d.Percentile(float64(q) * 25)
}

// Median returns the 50th percentile. It reports false for an empty
// distribution.
func (d *Distribution) Median() (float64, bool) {
	v, ok, _ := d.Percentile(50)
	return v, ok
}

// CentralMoment returns the n-th moment about the mean. It reports false
// for an empty distribution.
func (d *Distribution) CentralMoment(n int) (float64, bool) {
	mean, ok := d.Mean()
	if !ok {
		return 0, false
	}
	if v, hit := d.cache.moments.Get(n); hit {
		return v.(float64), true
	}
	m := d.SumOf(func(x float64) float64 {
		return math.Pow(x-mean, float64(n))
	}, math.Inf(-1), math.Inf(1)) / float64(d.total)
	d.cache.moments.Add(n, m)
	return m, true
}

// StdMoment returns the n-th standardized moment, the n-th central moment
// scaled by the n-th power of the standard deviation. It reports false
// when the distribution is empty or has no spread.
func (d *Distribution) StdMoment(n int) (float64, bool) {
	m2, ok := d.CentralMoment(2)
	if !ok || m2 <= 0 {
		return 0, false
	}
	m, _ := d.CentralMoment(n)
	return m / math.Pow(m2, float64(n)/2), true
}

// Skewness returns the sample-adjusted skewness. It reports false with
// fewer than three observations or no spread.
func (d *Distribution) Skewness() (float64, bool) {
	n := float64(d.total)
	if n < 3 {
		return 0, false
	}
	g1, ok := d.StdMoment(3)
	if !ok {
		return 0, false
	}
	return g1 * math.Sqrt(n*(n-1)) / (n - 2), true
}

// Kurtosis returns the sample-adjusted excess kurtosis. It reports false
// with fewer than four observations or no spread.
func (d *Distribution) Kurtosis() (float64, bool) {
	n := float64(d.total)
	if n < 4 {
		return 0, false
	}
	m4, ok := d.StdMoment(4)
	if !ok {
		return 0, false
	}
	g2 := m4 - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3)), true
}

// HarmonicMean returns the count over the sum of reciprocals. It reports
// false when the distribution is empty or the reciprocals cancel to zero.
func (d *Distribution) HarmonicMean() (float64, bool) {
	if d.total == 0 {
		return 0, false
	}
	recip := d.SumOf(func(x float64) float64 { return 1 / x }, math.Inf(-1), math.Inf(1))
	if recip == 0 {
		return 0, false
	}
	return float64(d.total) / recip, true
}

// GeometricMean returns the geometric mean. Any zero observation makes it
// exactly 0, all-negative data yields the negated mean of the magnitudes,
// and mixed signs fail because no real root exists. It reports false for
// an empty distribution.
func (d *Distribution) GeometricMean() (float64, bool, error) {
	keys := d.sortedKeys()
	if len(keys) == 0 {
		return 0, false, nil
	}
	minKey, maxKey := keys[0], keys[len(keys)-1]
	if minKey < 0 && maxKey > 0 {
		return 0, false, fmt.Errorf("geometric mean of mixed-sign data: %w", ErrDomain)
	}
	if _, ok := d.buckets[0]; ok {
		return 0, true, nil
	}
	m := math.Exp(d.SumOf(func(x float64) float64 {
		return math.Log(math.Abs(x))
	}, math.Inf(-1), math.Inf(1)) / float64(d.total))
	if maxKey < 0 {
		m = -m
	}
	return m, true, nil
}

// TrimmedMean returns the mean of the observations between the lower and
// the 1-upper percentile values. Fractions too small to cover a single
// observation trim nothing. It reports false when trimming leaves an
// empty interval, and fails when either fraction is outside [0, 1].
func (d *Distribution) TrimmedMean(lower, upper float64) (float64, bool, error) {
	lo, ok, err := d.Percentile(lower * 100)
	if err != nil {
		return 0, false, fmt.Errorf("lower fraction %v: %w", lower, err)
	}
	if !ok {
		lo = math.Inf(-1)
	}
	hi, ok, err := d.Percentile(100 - upper*100)
	if err != nil {
		return 0, false, fmt.Errorf("upper fraction %v: %w", upper, err)
	}
	if !ok {
		hi = math.Inf(-1)
	}
	v, ok := d.MeanOf(identity, lo, hi)
	return v, ok, nil
}
