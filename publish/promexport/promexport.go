// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

// Package promexport exposes distributions as Prometheus metrics. The
// collectors read their distribution at scrape time through a source
// callback; the engine itself is not safe for concurrent use, so the
// caller must not mutate the distribution while a scrape is running.
package promexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aws/metricsketch/stat"
)

// Opts names an exported metric family.
type Opts struct {
	Name        string
	Help        string
	ConstLabels prometheus.Labels
}

// SummaryCollector exports a distribution as a summary carrying the
// configured percentiles as quantiles.
type SummaryCollector struct {
	desc        *prometheus.Desc
	percentiles []float64
	source      func() *stat.Distribution
}

// NewSummaryCollector builds a collector reporting the given percentiles,
// expressed in [0, 100]. Percentiles without a result at scrape time are
// left out of the summary.
func NewSummaryCollector(opts Opts, percentiles []float64, source func() *stat.Distribution) *SummaryCollector {
	return &SummaryCollector{
		desc:        prometheus.NewDesc(opts.Name, opts.Help, nil, opts.ConstLabels),
		percentiles: percentiles,
		source:      source,
	}
}

func (c *SummaryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *SummaryCollector) Collect(ch chan<- prometheus.Metric) {
	d := c.source()
	if d == nil {
		return
	}
	quantiles := make(map[float64]float64, len(c.percentiles))
	for _, p := range c.percentiles {
		if v, ok, err := d.Percentile(p); err == nil && ok {
			quantiles[p/100] = v
		}
	}
	ch <- prometheus.MustNewConstSummary(c.desc, d.Count(), d.Sum(), quantiles)
}

// HistogramCollector exports a distribution as a histogram whose bounds
// are the engine's own bucket upper edges with cumulative counts.
type HistogramCollector struct {
	desc   *prometheus.Desc
	source func() *stat.Distribution
}

func NewHistogramCollector(opts Opts, source func() *stat.Distribution) *HistogramCollector {
	return &HistogramCollector{
		desc:   prometheus.NewDesc(opts.Name, opts.Help, nil, opts.ConstLabels),
		source: source,
	}
}

func (c *HistogramCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *HistogramCollector) Collect(ch chan<- prometheus.Metric) {
	d := c.source()
	if d == nil {
		return
	}
	s := d.Snapshot()
	buckets := make(map[float64]uint64, len(s.Values))
	var cum uint64
	for i, v := range s.Values {
		cum += s.Counts[i]
		_, upper := d.BucketEdges(v)
		buckets[upper] = cum
	}
	ch <- prometheus.MustNewConstHistogram(c.desc, d.Count(), d.Sum(), buckets)
}
