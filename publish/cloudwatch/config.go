// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package cloudwatch

import (
	"errors"
	"time"
)

const (
	defaultMaxDatumsPerCall   = 1000 // PutMetricData accepts up to 1000 datums per call
	defaultMaxValuesPerDatum  = 150  // values/counts pairs accepted in a single datum
	defaultForceFlushInterval = time.Minute

	metricChanBufferSize = 10000

	// MaxDimensions is the CloudWatch limit on dimensions per metric.
	MaxDimensions = 30
)

// Config controls batching and flushing of datums toward CloudWatch.
type Config struct {
	// Namespace is the CloudWatch namespace all datums are published under.
	Namespace string
	// MaxDatumsPerCall caps the datums sent in one PutMetricData call.
	MaxDatumsPerCall int
	// MaxValuesPerDatum caps the value/count pairs in one datum; wider
	// distributions are split across datums.
	MaxValuesPerDatum int
	// ForceFlushInterval bounds how long a non-full batch may wait.
	ForceFlushInterval time.Duration
}

func (c *Config) validate() error {
	if c.Namespace == "" {
		return errors.New("cloudwatch: namespace is required")
	}
	if c.MaxDatumsPerCall == 0 {
		c.MaxDatumsPerCall = defaultMaxDatumsPerCall
	}
	if c.MaxDatumsPerCall < 0 {
		return errors.New("cloudwatch: max datums per call must be positive")
	}
	if c.MaxValuesPerDatum == 0 {
		c.MaxValuesPerDatum = defaultMaxValuesPerDatum
	}
	if c.MaxValuesPerDatum < 0 {
		return errors.New("cloudwatch: max values per datum must be positive")
	}
	if c.ForceFlushInterval == 0 {
		c.ForceFlushInterval = defaultForceFlushInterval
	}
	if c.ForceFlushInterval < 0 {
		return errors.New("cloudwatch: force flush interval must be positive")
	}
	return nil
}
