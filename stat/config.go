// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"fmt"
	"math"
)

// DefaultBase is the bucket ratio used when Config.Base is zero. It yields
// 24 buckets per decade, bounding relative error at roughly 5% while keeping
// exact powers of ten as bucket representatives.
var DefaultBase = math.Pow(10, 1.0/24)

// Config carries the immutable construction parameters of a Distribution.
type Config struct {
	// Base is the ratio between consecutive bucket edges. Must be finite and
	// greater than 1. Zero selects DefaultBase.
	Base float64
	// ZeroThreshold is the magnitude at or below which observations fold
	// into the zero bucket. Must be finite and non-negative. It is snapped
	// down to the nearest bucket boundary during construction so the zero
	// bucket ends exactly where a regular bucket begins.
	ZeroThreshold float64
}

func (c Config) validate() error {
	if c.Base != 0 && (math.IsNaN(c.Base) || math.IsInf(c.Base, 0) || c.Base <= 1) {
		return fmt.Errorf("base %v: must be a finite ratio greater than 1: %w", c.Base, ErrConfig)
	}
	if math.IsNaN(c.ZeroThreshold) || math.IsInf(c.ZeroThreshold, 0) || c.ZeroThreshold < 0 {
		return fmt.Errorf("zero threshold %v: must be finite and non-negative: %w", c.ZeroThreshold, ErrConfig)
	}
	return nil
}
