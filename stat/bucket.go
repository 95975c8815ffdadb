// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import "math"

// MinValue and MaxValue bound the non-zero magnitudes a bucketizer accepts.
// Exact zero and values inside the zero threshold are always accepted.
const (
	MinValue = 1e-300
	MaxValue = 1e300
)

// bucketer maps real values to logarithmic buckets. Bucket i covers
// magnitudes [floor*base^i, floor*base^(i+1)) and is represented by base^i,
// so the bucket containing magnitude 1 is centered exactly on 1. Magnitudes
// at or below the zero threshold share a dedicated bucket represented by 0.
type bucketer struct {
	base          float64
	zeroThreshold float64

	logBase  float64
	floor    float64
	logFloor float64
}

func newBucketer(cfg Config) (bucketer, error) {
	if err := cfg.validate(); err != nil {
		return bucketer{}, err
	}
	base := cfg.Base
	if base == 0 {
		base = DefaultBase
	}
	b := bucketer{
		base:    base,
		logBase: math.Log(base),
		floor:   2 / (1 + base),
	}
	b.logFloor = math.Log(b.floor)
	b.zeroThreshold = b.snapDown(cfg.ZeroThreshold)
	return b, nil
}

// round maps a value to its bucket representative: 0 for the zero bucket,
// otherwise ±base^i. Rounding a representative returns it unchanged.
func (b bucketer) round(v float64) float64 {
	m := math.Abs(v)
	if m <= b.zeroThreshold {
		return 0
	}
	rep := math.Pow(b.base, float64(b.magnitudeIndex(m)))
	if v < 0 {
		return -rep
	}
	return rep
}

// edges returns the real-line boundaries of the bucket holding v. The zero
// bucket collapses to [zeroThreshold, zeroThreshold] by convention.
func (b bucketer) edges(v float64) (lower, upper float64) {
	m := math.Abs(v)
	if m <= b.zeroThreshold {
		return b.zeroThreshold, b.zeroThreshold
	}
	i := b.magnitudeIndex(m)
	lower = b.floor * math.Pow(b.base, float64(i))
	upper = b.floor * math.Pow(b.base, float64(i+1))
	if v < 0 {
		lower, upper = -upper, -lower
	}
	return lower, upper
}

// width is the span of the bucket holding v; 0 for the zero bucket.
func (b bucketer) width(v float64) float64 {
	lower, upper := b.edges(v)
	return upper - lower
}

// supported reports whether the bucketizer can place v.
func (b bucketer) supported(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	m := math.Abs(v)
	if m <= b.zeroThreshold {
		return true
	}
	return m >= MinValue && m <= MaxValue
}

// magnitudeIndex returns the bucket index for a positive magnitude.
func (b bucketer) magnitudeIndex(m float64) int64 {
	return floor((math.Log(m) - b.logFloor) / b.logBase)
}

// snapDown moves a positive threshold to the lower edge of the bucket
// containing it. A threshold already sitting on a boundary stays put.
func (b bucketer) snapDown(t float64) float64 {
	if t <= 0 {
		return 0
	}
	i := b.magnitudeIndex(t)
	if b.floor*math.Pow(b.base, float64(i+1)) <= t {
		i++
	}
	return b.floor * math.Pow(b.base, float64(i))
}

// floor is faster than math.Floor for values that fit an int64.
func floor(fvalue float64) int64 {
	ivalue := int64(fvalue)
	if fvalue < 0 && float64(ivalue) != fvalue {
		ivalue--
	}
	return ivalue
}
