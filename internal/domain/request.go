package domain

import (
	"context"
	"time"
)

// AnalysisRequest is the JSON body of a source message or HTTP request.
type AnalysisRequest struct {
	ID            string    `json:"id"`
	StationID     string    `json:"station_id,omitempty"`
	Method        string    `json:"method"`
	Gusts         []float64 `json:"gusts"`
	Years         float64   `json:"years,omitempty"`
	MinThreshold  *float64  `json:"min_threshold,omitempty"`
	MaxThreshold  *float64  `json:"max_threshold,omitempty"`
	GustThreshold float64   `json:"gust_threshold,omitempty"`
	ReturnPeriods []float64 `json:"return_periods,omitempty"`
}

// Sample converts the request into estimator input.
func (r AnalysisRequest) Sample() Sample {
	return Sample{
		Gusts:         r.Gusts,
		Years:         r.Years,
		GustThreshold: r.GustThreshold,
		Bounds:        ThresholdBounds{Min: r.MinThreshold, Max: r.MaxThreshold},
	}
}

// RawMessage represents an unprocessed message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DesignWindResult is the outcome of one analysis request.
type DesignWindResult struct {
	ID           string             `json:"id"`
	StationID    string             `json:"station_id,omitempty"`
	Method       Method             `json:"method"`
	SampleSize   int                `json:"sample_size"`
	Parameters   map[string]float64 `json:"parameters"`
	DesignSpeeds []DesignSpeed      `json:"design_speeds"`
	Measured     []MeasuredPoint    `json:"measured,omitempty"`
	ComputedAt   time.Time          `json:"computed_at"`
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
