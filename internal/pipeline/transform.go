package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	"github.com/couchcryptid/storm-data-extremes-service/internal/observability"
)

// Estimation outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeUnsupported = "unsupported"
)

// Request sources used as metric labels.
const (
	SourceKafka = "kafka"
	SourceHTTP  = "http"
)

// WindEstimator implements MessageEstimator by running the requested extreme value
// method and tabulating design speeds.
type WindEstimator struct {
	settings domain.Settings
	periods  []float64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewEstimator creates a WindEstimator. periods are tabulated for requests that
// do not name their own return periods.
func NewEstimator(settings domain.Settings, periods []float64, logger *slog.Logger, metrics *observability.Metrics) *WindEstimator {
	if len(periods) == 0 {
		periods = domain.DefaultReturnPeriods
	}
	return &WindEstimator{
		settings: settings,
		periods:  periods,
		logger:   logger,
		metrics:  metrics,
	}
}

// RejectedRequest is returned by EstimateMessage when a parsed request cannot be
// estimated. It identifies the request for logging.
type RejectedRequest struct {
	RequestID string
	StationID string
	Method    string
	Err       error
}

func (r *RejectedRequest) Error() string {
	return fmt.Sprintf("request %s: %v", r.RequestID, r.Err)
}

func (r *RejectedRequest) Unwrap() error { return r.Err }

// EstimateMessage parses a source message and estimates its design wind speeds.
// Estimation failures are returned as *RejectedRequest.
func (e *WindEstimator) EstimateMessage(ctx context.Context, raw domain.RawMessage) (domain.DesignWindResult, error) {
	req, err := domain.ParseRawMessage(raw)
	if err != nil {
		return domain.DesignWindResult{}, err
	}
	result, err := e.analyze(ctx, req, SourceKafka)
	if err != nil {
		return domain.DesignWindResult{}, &RejectedRequest{
			RequestID: req.ID,
			StationID: req.StationID,
			Method:    req.Method,
			Err:       err,
		}
	}
	return result, nil
}

// Analyze estimates design wind speeds for a request received over HTTP.
func (e *WindEstimator) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.DesignWindResult, error) {
	return e.analyze(ctx, req, SourceHTTP)
}

func (e *WindEstimator) analyze(_ context.Context, req domain.AnalysisRequest, source string) (domain.DesignWindResult, error) {
	label := methodLabel(req.Method)
	start := time.Now()

	result, err := domain.Analyze(req, e.settings, e.periods)
	e.metrics.Estimations.WithLabelValues(label, source, Outcome(err)).Inc()
	if err != nil {
		return domain.DesignWindResult{}, err
	}

	e.metrics.EstimationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	e.metrics.SampleSize.WithLabelValues(label).Observe(float64(result.SampleSize))
	e.logger.Debug("design wind speeds estimated",
		"request_id", result.ID,
		"station_id", result.StationID,
		"method", result.Method,
		"sample_size", result.SampleSize,
	)
	return result, nil
}

// Outcome classifies an estimation error for metrics and HTTP status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrNotImplemented), errors.Is(err, domain.ErrUnknownMethod):
		return OutcomeUnsupported
	default:
		return OutcomeInvalid
	}
}

// methodLabel bounds metric cardinality to the known method names.
func methodLabel(name string) string {
	m, err := domain.ParseMethod(name)
	if err != nil {
		return "unknown"
	}
	return string(m)
}
