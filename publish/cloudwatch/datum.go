// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package cloudwatch

import (
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"golang.org/x/exp/maps"

	"github.com/aws/metricsketch/stat"
)

// Metric is one named distribution with its dimensions, queued for
// publication.
type Metric struct {
	Name       string
	Dimensions map[string]string
	Timestamp  time.Time
	Unit       types.StandardUnit
	Dist       *stat.Distribution
}

// BuildMetricDatums converts a metric into PutMetricData datums. A
// distribution with more distinct values than fit one datum is split into
// several, each carrying the statistic set of its own slice of values.
func BuildMetricDatums(m Metric, maxValuesPerDatum int) []types.MetricDatum {
	if m.Dist == nil || m.Dist.Size() == 0 {
		return nil
	}
	if maxValuesPerDatum <= 0 {
		maxValuesPerDatum = defaultMaxValuesPerDatum
	}
	snapshot := m.Dist.Snapshot()
	dimensions := BuildDimensions(m.Dimensions)
	timestamp := m.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	datums := make([]types.MetricDatum, 0, (len(snapshot.Values)+maxValuesPerDatum-1)/maxValuesPerDatum)
	for start := 0; start < len(snapshot.Values); start += maxValuesPerDatum {
		end := start + maxValuesPerDatum
		if end > len(snapshot.Values) {
			end = len(snapshot.Values)
		}
		values := snapshot.Values[start:end]
		counts := make([]float64, end-start)
		stats := types.StatisticSet{
			Minimum: aws.Float64(values[0]),
			Maximum: aws.Float64(values[len(values)-1]),
		}
		var sampleCount, sum float64
		for i, count := range snapshot.Counts[start:end] {
			counts[i] = float64(count)
			sampleCount += float64(count)
			sum += values[i] * float64(count)
		}
		stats.SampleCount = aws.Float64(sampleCount)
		stats.Sum = aws.Float64(sum)

		datums = append(datums, types.MetricDatum{
			MetricName:      aws.String(m.Name),
			Dimensions:      dimensions,
			Timestamp:       aws.Time(timestamp),
			Unit:            m.Unit,
			Values:          values,
			Counts:          counts,
			StatisticValues: &stats,
		})
	}
	return datums
}

// BuildDimensions converts a tag map to CloudWatch dimensions. CloudWatch
// accepts at most MaxDimensions per metric, so only the first 30 keys in
// alphabetical order are kept. The "host" tag always makes the cut.
func BuildDimensions(tagMap map[string]string) []types.Dimension {
	dimensions := make([]types.Dimension, 0, min(len(tagMap), MaxDimensions))
	if host, ok := tagMap["host"]; ok && host != "" {
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String("host"),
			Value: aws.String(host),
		})
	}
	for _, k := range sortedTagKeys(tagMap) {
		if len(dimensions) >= MaxDimensions {
			break
		}
		if k == "host" {
			continue
		}
		if tagMap[k] == "" {
			continue
		}
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(tagMap[k]),
		})
	}
	return dimensions
}

func sortedTagKeys(tagMap map[string]string) []string {
	keys := maps.Keys(tagMap)
	sort.Strings(keys)
	return keys
}
