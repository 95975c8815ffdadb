// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package cloudwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aws/metricsketch/stat"
)

type mockCloudWatchClient struct {
	mock.Mock
}

func (svc *mockCloudWatchClient) PutMetricData(
	_ context.Context,
	input *cloudwatch.PutMetricDataInput,
	_ ...func(*cloudwatch.Options),
) (*cloudwatch.PutMetricDataOutput, error) {
	args := svc.Called(input)
	return args.Get(0).(*cloudwatch.PutMetricDataOutput), args.Error(1)
}

func newTestPublisher(t *testing.T, svc PutMetricDataAPI, config Config) *Publisher {
	t.Helper()
	if config.Namespace == "" {
		config.Namespace = "Test/Namespace"
	}
	p, err := NewPublisher(config, svc, nil)
	require.NoError(t, err)
	return p
}

func makeMetric(name string, values ...float64) Metric {
	dist := stat.NewDefault()
	_ = dist.Add(values...)
	return Metric{
		Name:       name,
		Dimensions: map[string]string{"host": "example"},
		Timestamp:  time.Now(),
		Dist:       dist,
	}
}

func TestNewPublisherValidation(t *testing.T) {
	svc := new(mockCloudWatchClient)
	_, err := NewPublisher(Config{}, svc, nil)
	assert.Error(t, err)
	_, err = NewPublisher(Config{Namespace: "Test", MaxDatumsPerCall: -1}, svc, nil)
	assert.Error(t, err)
	_, err = NewPublisher(Config{Namespace: "Test", MaxValuesPerDatum: -1}, svc, nil)
	assert.Error(t, err)
	_, err = NewPublisher(Config{Namespace: "Test", ForceFlushInterval: -time.Second}, svc, nil)
	assert.Error(t, err)
	_, err = NewPublisher(Config{Namespace: "Test"}, nil, nil)
	assert.Error(t, err)
}

func TestStopFlushesQueuedMetrics(t *testing.T) {
	svc := new(mockCloudWatchClient)
	svc.On("PutMetricData", mock.Anything).Return(&cloudwatch.PutMetricDataOutput{}, nil)
	p := newTestPublisher(t, svc, Config{})

	require.NoError(t, p.Publish(makeMetric("request_time", 1, 3, 5)))
	require.NoError(t, p.Publish(makeMetric("queue_depth", 8)))
	p.Stop()

	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 1))
	input := svc.Calls[0].Arguments.Get(0).(*cloudwatch.PutMetricDataInput)
	assert.Equal(t, "Test/Namespace", *input.Namespace)
	require.Len(t, input.MetricData, 2)
	assert.Equal(t, "request_time", *input.MetricData[0].MetricName)
	assert.Equal(t, 3.0, *input.MetricData[0].StatisticValues.SampleCount)
	assert.Equal(t, "queue_depth", *input.MetricData[1].MetricName)
}

func TestBatchFlushesWhenFull(t *testing.T) {
	svc := new(mockCloudWatchClient)
	svc.On("PutMetricData", mock.Anything).Return(&cloudwatch.PutMetricDataOutput{}, nil)
	p := newTestPublisher(t, svc, Config{MaxDatumsPerCall: 2})

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Publish(makeMetric("m", float64(i+1))))
	}
	p.Stop()

	// Two full batches plus the remainder at shutdown.
	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 3))
	var sizes []int
	for _, call := range svc.Calls {
		input := call.Arguments.Get(0).(*cloudwatch.PutMetricDataInput)
		sizes = append(sizes, len(input.MetricData))
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestFlushOnInterval(t *testing.T) {
	svc := new(mockCloudWatchClient)
	svc.On("PutMetricData", mock.Anything).Return(&cloudwatch.PutMetricDataOutput{}, nil)
	p := newTestPublisher(t, svc, Config{ForceFlushInterval: time.Second})

	require.NoError(t, p.Publish(makeMetric("m", 1)))
	time.Sleep(2500 * time.Millisecond)
	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 1))

	// Nothing left over for the shutdown flush.
	p.Stop()
	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 1))
}

func TestPublishAfterStop(t *testing.T) {
	svc := new(mockCloudWatchClient)
	p := newTestPublisher(t, svc, Config{})
	p.Stop()
	p.Stop() // stopping twice is fine

	assert.ErrorIs(t, p.Publish(makeMetric("m", 1)), ErrPublisherStopped)
	svc.AssertNotCalled(t, "PutMetricData", mock.Anything)
}

func TestRetryOnThrottling(t *testing.T) {
	svc := new(mockCloudWatchClient)
	svc.On("PutMetricData", mock.Anything).
		Return(&cloudwatch.PutMetricDataOutput{}, &types.LimitExceededFault{}).Once()
	svc.On("PutMetricData", mock.Anything).
		Return(&cloudwatch.PutMetricDataOutput{}, nil)
	p := newTestPublisher(t, svc, Config{})

	require.NoError(t, p.Publish(makeMetric("m", 1)))
	p.Stop()

	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 2))
}

func TestNoRetryOnFatalError(t *testing.T) {
	svc := new(mockCloudWatchClient)
	svc.On("PutMetricData", mock.Anything).
		Return(&cloudwatch.PutMetricDataOutput{}, errors.New("access denied"))
	p := newTestPublisher(t, svc, Config{})

	require.NoError(t, p.Publish(makeMetric("m", 1)))
	p.Stop()

	assert.True(t, svc.AssertNumberOfCalls(t, "PutMetricData", 1))
}
