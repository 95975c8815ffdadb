// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

// Package cloudwatch batches distributions into PutMetricData calls.
// Datums are collected on a channel, grouped into batches, and flushed by
// a background goroutine either when a batch fills up or when the flush
// interval elapses.
package cloudwatch

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const (
	defaultRetryCount = 5
	backoffRetryBase  = 200 * time.Millisecond
)

// ErrPublisherStopped is returned by Publish after Stop.
var ErrPublisherStopped = errors.New("cloudwatch: publisher stopped")

// PutMetricDataAPI is the CloudWatch client surface the publisher needs.
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Publisher accumulates metrics and publishes them in batches from a
// background goroutine.
type Publisher struct {
	config Config
	logger *zap.Logger
	svc    PutMetricDataAPI

	metricChan   chan Metric
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once

	batch      []types.MetricDatum
	batchBegin time.Time
}

// NewPublisher validates the configuration and starts the flush routine.
func NewPublisher(config Config, svc PutMetricDataAPI, logger *zap.Logger) (*Publisher, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, errors.New("cloudwatch: client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{
		config:       config,
		logger:       logger,
		svc:          svc,
		metricChan:   make(chan Metric, metricChanBufferSize),
		shutdownChan: make(chan struct{}),
		batch:        make([]types.MetricDatum, 0, config.MaxDatumsPerCall),
		batchBegin:   time.Now(),
	}
	p.wg.Add(1)
	go p.run()
	return p, nil
}

// Publish queues a metric. It blocks while the buffer is full and fails
// once the publisher has been stopped.
func (p *Publisher) Publish(m Metric) error {
	select {
	case <-p.shutdownChan:
		return ErrPublisherStopped
	default:
	}
	select {
	case <-p.shutdownChan:
		return ErrPublisherStopped
	case p.metricChan <- m:
		return nil
	}
}

// Stop drains queued metrics, flushes the final batch, and waits for the
// background routine to exit. It is safe to call more than once.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.shutdownChan)
	})
	p.wg.Wait()
}

func (p *Publisher) run() {
	defer p.wg.Done()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case m := <-p.metricChan:
			p.append(m)
		case <-ticker.C:
			if len(p.batch) > 0 && time.Since(p.batchBegin) >= p.config.ForceFlushInterval {
				p.flush()
			}
		case <-p.shutdownChan:
			p.drain()
			p.flush()
			return
		}
	}
}

func (p *Publisher) append(m Metric) {
	for _, datum := range BuildMetricDatums(m, p.config.MaxValuesPerDatum) {
		p.batch = append(p.batch, datum)
		if len(p.batch) >= p.config.MaxDatumsPerCall {
			p.flush()
		}
	}
}

// drain consumes whatever is still buffered at shutdown.
func (p *Publisher) drain() {
	for {
		select {
		case m := <-p.metricChan:
			p.append(m)
		default:
			return
		}
	}
}

func (p *Publisher) flush() {
	if len(p.batch) == 0 {
		return
	}
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.config.Namespace),
		MetricData: p.batch,
	}
	var err error
	for attempt := 0; attempt <= defaultRetryCount; attempt++ {
		if attempt > 0 {
			backoffSleep(attempt)
		}
		_, err = p.svc.PutMetricData(context.Background(), input)
		if err == nil {
			break
		}
		var limitExceeded *types.LimitExceededFault
		var internalFault *types.InternalServiceFault
		if !errors.As(err, &limitExceeded) && !errors.As(err, &internalFault) {
			break
		}
		p.logger.Warn("put metric data throttled, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	if err != nil {
		p.logger.Error("put metric data failed",
			zap.Int("datums", len(p.batch)),
			zap.Error(err))
	} else {
		p.logger.Debug("published batch", zap.Int("datums", len(p.batch)))
	}
	p.batch = make([]types.MetricDatum, 0, p.config.MaxDatumsPerCall)
	p.batchBegin = time.Now()
}

// Set seed once.
var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// backoffSleep sleeps an exponentially growing duration with jitter.
func backoffSleep(attempt int) {
	d := backoffRetryBase * time.Duration(1<<attempt)
	if d > time.Minute {
		d = time.Minute
	}
	time.Sleep(d/2 + publishJitter(d/2))
}

// publishJitter returns a random duration between 0 and the given interval.
func publishJitter(interval time.Duration) time.Duration {
	return time.Duration(seededRand.Int63n(int64(interval)))
}
