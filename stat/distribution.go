// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

// Package stat implements an approximate streaming statistics engine.
// Values are folded into logarithmic buckets whose representatives carry
// a bounded relative error, so a Distribution summarizes arbitrarily many
// observations in space proportional to the number of occupied buckets.
// All statistics (moments, percentiles, histograms, mode) are computed
// from the bucketed form and answer within the bucket resolution.
package stat

import (
	"fmt"
	"maps"

	"github.com/google/btree"
	"go.uber.org/multierr"
)

const keyTreeDegree = 2

func lessKey(a, b float64) bool {
	return a < b
}

// Distribution accumulates values into logarithmic buckets and answers
// statistical queries over them. It is not safe for concurrent use.
type Distribution struct {
	bucketer

	buckets map[float64]uint64
	total   uint64
	keys    *btree.BTreeG[float64]
	cache   *queryCache
}

// New creates an empty distribution with the given configuration.
func New(cfg Config) (*Distribution, error) {
	b, err := newBucketer(cfg)
	if err != nil {
		return nil, err
	}
	return &Distribution{
		bucketer: b,
		buckets:  make(map[float64]uint64),
		keys:     btree.NewG(keyTreeDegree, lessKey),
		cache:    newQueryCache(),
	}, nil
}

// NewDefault creates an empty distribution with base DefaultBase and a
// zero threshold of 0.
func NewDefault() *Distribution {
	d, _ := New(Config{})
	return d
}

// Add folds values into the distribution. Values outside the supported
// domain are skipped and reported through the combined error; all
// remaining values are still recorded.
func (d *Distribution) Add(values ...float64) error {
	var errs error
	dirty := false
	for _, v := range values {
		if !d.supported(v) {
			errs = multierr.Append(errs, fmt.Errorf("unsupported value %v: %w", v, ErrUnsupportedValue))
			continue
		}
		d.bump(d.round(v), 1)
		dirty = true
	}
	if dirty {
		d.invalidate()
	}
	return errs
}

// AddWeighted folds pre-aggregated value counts into the distribution.
// Entries with a zero weight are ignored.
func (d *Distribution) AddWeighted(values map[float64]uint64) error {
	var errs error
	dirty := false
	for v, w := range values {
		if w == 0 {
			continue
		}
		if !d.supported(v) {
			errs = multierr.Append(errs, fmt.Errorf("unsupported value %v: %w", v, ErrUnsupportedValue))
			continue
		}
		d.bump(d.round(v), w)
		dirty = true
	}
	if dirty {
		d.invalidate()
	}
	return errs
}

// Merge folds every bucket of other into d. The other distribution is
// read through its exported representatives, so merging distributions
// with different bases re-buckets rather than failing.
func (d *Distribution) Merge(other *Distribution) error {
	if other == nil {
		return nil
	}
	return d.AddWeighted(other.Export())
}

// Clear removes all recorded values but keeps the configuration.
func (d *Distribution) Clear() {
	clear(d.buckets)
	d.total = 0
	d.keys.Clear(false)
	d.invalidate()
}

// Export returns a copy of the bucket contents keyed by representative.
func (d *Distribution) Export() map[float64]uint64 {
	out := make(map[float64]uint64, len(d.buckets))
	maps.Copy(out, d.buckets)
	return out
}

// Count returns the total number of recorded observations.
func (d *Distribution) Count() uint64 {
	return d.total
}

// Size returns the number of occupied buckets.
func (d *Distribution) Size() int {
	return len(d.buckets)
}

// Base returns the configured bucket base.
func (d *Distribution) Base() float64 {
	return d.base
}

// ZeroThreshold returns the effective zero threshold after snapping.
func (d *Distribution) ZeroThreshold() float64 {
	return d.zeroThreshold
}

// IsSupportedValue reports whether Add would accept v.
func (d *Distribution) IsSupportedValue(v float64) bool {
	return d.supported(v)
}

// Round returns the representative of the bucket v would land in.
func (d *Distribution) Round(v float64) float64 {
	return d.round(v)
}

// BucketEdges returns the real-line boundaries of the bucket holding v.
// The zero bucket collapses to [ZeroThreshold, ZeroThreshold].
func (d *Distribution) BucketEdges(v float64) (lower, upper float64) {
	return d.edges(v)
}

func (d *Distribution) bump(key float64, w uint64) {
	if _, ok := d.buckets[key]; !ok {
		d.keys.ReplaceOrInsert(key)
	}
	d.buckets[key] += w
	d.total += w
}

func (d *Distribution) invalidate() {
	d.cache = newQueryCache()
}
