package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	"github.com/couchcryptid/storm-data-extremes-service/internal/observability"
)

// RequestSource fetches up to batchSize raw analysis requests.
type RequestSource interface {
	FetchRequests(ctx context.Context, batchSize int) ([]domain.RawMessage, error)
}

// MessageEstimator estimates the design wind result for one raw request.
type MessageEstimator interface {
	EstimateMessage(ctx context.Context, raw domain.RawMessage) (domain.DesignWindResult, error)
}

// ResultSink publishes a batch of design wind results.
type ResultSink interface {
	PublishResults(ctx context.Context, results []domain.DesignWindResult) error
}

// Retry delay after a fetch or publish failure, doubling up to maxBackoff.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline turns a stream of analysis requests into published design wind results.
type Pipeline struct {
	source    RequestSource
	estimator MessageEstimator
	sink      ResultSink
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	batchSize int
}

// New creates a Pipeline reading from source and publishing to sink.
func New(source RequestSource, estimator MessageEstimator, sink ResultSink, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		source:    source,
		estimator: estimator,
		sink:      sink,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one result.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not produced any results yet")
	}
	return nil
}

// Ready reports whether at least one batch of results has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run consumes analysis requests, estimates them in batches, and publishes the
// results until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("estimation pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		if !p.runBatch(ctx, &backoff) {
			break
		}
	}
	p.logger.Info("estimation pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// runBatch fetches one batch of requests and estimates and publishes it. It
// returns false once the pipeline should stop.
func (p *Pipeline) runBatch(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	requests, err := p.source.FetchRequests(ctx, p.batchSize)
	switch {
	case ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("fetch analysis requests failed", "error", err, "retry_in", *backoff)
		return p.backoffOrStop(ctx, backoff)
	case len(requests) == 0:
		return true
	}

	p.metrics.RequestsConsumed.Add(float64(len(requests)))
	p.metrics.BatchSize.Observe(float64(len(requests)))
	*backoff = initialBackoff

	results, accepted := p.estimate(ctx, requests)
	if len(results) == 0 {
		return true
	}

	if err := p.sink.PublishResults(ctx, results); err != nil {
		// Offsets stay uncommitted so the requests are redelivered.
		p.logger.Error("publish design wind results failed",
			"error", err, "results", len(results), "retry_in", *backoff)
		return p.backoffOrStop(ctx, backoff)
	}
	p.metrics.ResultsProduced.Add(float64(len(results)))
	for _, raw := range accepted {
		p.commitOffset(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// estimate runs every request in the batch. A request that cannot be estimated
// never will be, so its offset is committed straight away and it is dropped.
// The returned requests line up with the results.
func (p *Pipeline) estimate(ctx context.Context, requests []domain.RawMessage) ([]domain.DesignWindResult, []domain.RawMessage) {
	results := make([]domain.DesignWindResult, 0, len(requests))
	accepted := make([]domain.RawMessage, 0, len(requests))

	for _, raw := range requests {
		result, err := p.estimator.EstimateMessage(ctx, raw)
		if err != nil {
			p.logRejected(raw, err)
			p.commitOffset(ctx, raw)
			continue
		}
		results = append(results, result)
		accepted = append(accepted, raw)
	}
	return results, accepted
}

func (p *Pipeline) logRejected(raw domain.RawMessage, err error) {
	attrs := []any{
		"error", err,
		"outcome", Outcome(err),
		"key", string(raw.Key),
		"offset", raw.Offset,
	}
	var rejected *RejectedRequest
	if errors.As(err, &rejected) {
		attrs = append(attrs,
			"request_id", rejected.RequestID,
			"station_id", rejected.StationID,
			"method", rejected.Method,
		)
	}
	p.logger.Warn("analysis request rejected", attrs...)
}

// backoffOrStop waits out the current backoff and doubles it. It returns
// false if the context ends first.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawMessage) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit request offset failed", "error", err,
			"key", string(raw.Key), "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
