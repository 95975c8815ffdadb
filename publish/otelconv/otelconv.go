// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

// Package otelconv converts distributions to and from OpenTelemetry
// histogram data points. The encoding is the parallel-array one: each
// occupied bucket contributes one explicit bound carrying the bucket's
// upper edge, with the bucket count at the same position, in ascending
// order.
package otelconv

import (
	"fmt"
	"math"

	"go.opentelemetry.io/collector/pdata/pmetric"

	"github.com/aws/metricsketch/stat"
)

// ToHistogramDataPoint fills dp with the contents of d.
func ToHistogramDataPoint(d *stat.Distribution, dp pmetric.HistogramDataPoint) {
	if minVal, ok := d.Min(); ok {
		dp.SetMin(minVal)
	}
	if maxVal, ok := d.Max(); ok {
		dp.SetMax(maxVal)
	}
	dp.SetCount(d.Count())
	dp.SetSum(d.Sum())

	s := d.Snapshot()
	dp.ExplicitBounds().EnsureCapacity(len(s.Values))
	dp.BucketCounts().EnsureCapacity(len(s.Values))
	for i, v := range s.Values {
		_, upper := d.BucketEdges(v)
		dp.ExplicitBounds().Append(upper)
		dp.BucketCounts().Append(s.Counts[i])
	}
}

// FromHistogramDataPoint rebuilds a distribution from a data point by
// re-ingesting each bound's bucket at its midpoint. When the bounds were
// produced by ToHistogramDataPoint under the same configuration the round
// trip is exact, because the arithmetic midpoint of a bucket is its
// representative; foreign bounds re-bucket at the receiver's resolution.
func FromHistogramDataPoint(dp pmetric.HistogramDataPoint, cfg stat.Config) (*stat.Distribution, error) {
	if dp.ExplicitBounds().Len() != dp.BucketCounts().Len() {
		return nil, fmt.Errorf("data point has %d bounds and %d counts",
			dp.ExplicitBounds().Len(), dp.BucketCounts().Len())
	}
	d, err := stat.New(cfg)
	if err != nil {
		return nil, err
	}
	weights := make(map[float64]uint64, dp.ExplicitBounds().Len())
	for i := 0; i < dp.ExplicitBounds().Len(); i++ {
		count := dp.BucketCounts().At(i)
		if count == 0 {
			continue
		}
		weights[bucketMidpoint(d, dp.ExplicitBounds().At(i))] += count
	}
	if err := d.AddWeighted(weights); err != nil {
		return nil, err
	}
	return d, nil
}

// bucketMidpoint maps an upper bucket edge back to the midpoint of the
// bucket it closes. Positive edges are the upper magnitude edge and
// negative edges the lower one, so the two sides scale differently.
func bucketMidpoint(d *stat.Distribution, bound float64) float64 {
	base := d.Base()
	switch {
	case math.Abs(bound) <= d.ZeroThreshold():
		return 0
	case bound > 0:
		return bound * (1 + base) / (2 * base)
	default:
		return bound * (1 + base) / 2
	}
}
