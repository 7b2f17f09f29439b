package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultReturnPeriods are tabulated when a request names none.
var DefaultReturnPeriods = []float64{10, 20, 50, 100, 200, 500, 700, 1000}

// ParseRawMessage deserializes a RawMessage's value into an AnalysisRequest.
// Requests without an ID get a deterministic one derived from their content.
func ParseRawMessage(raw RawMessage) (AnalysisRequest, error) {
	var req AnalysisRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AnalysisRequest{}, fmt.Errorf("parse analysis request: %w", err)
	}
	if req.ID == "" {
		req.ID = generateID(req)
	}
	return req, nil
}

// generateID hashes station, method, duration and gusts so that replaying the
// same request produces the same result key.
func generateID(req AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%g|%g", req.StationID, strings.ToLower(req.Method), req.Years, req.GustThreshold)
	for _, g := range req.Gusts {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(g, 'g', -1, 64))
	}
	hash := sha256.Sum256([]byte(b.String()))
	short := hex.EncodeToString(hash[:8])
	if req.StationID == "" {
		return short
	}
	return req.StationID + "-" + short
}

// Analyze runs the requested method and tabulates design speeds at the
// request's return periods, or at defaultPeriods when it has none.
func Analyze(req AnalysisRequest, settings Settings, defaultPeriods []float64) (DesignWindResult, error) {
	if req.ID == "" {
		req.ID = generateID(req)
	}
	method, err := ParseMethod(req.Method)
	if err != nil {
		return DesignWindResult{}, err
	}

	est, err := Estimate(method, req.Sample(), settings)
	if err != nil {
		return DesignWindResult{}, err
	}

	periods := req.ReturnPeriods
	if len(periods) == 0 {
		periods = defaultPeriods
	}
	table, err := Tabulate(est.Curve, periods, settings.Constants)
	if err != nil {
		return DesignWindResult{}, fmt.Errorf("%s: %w", method, err)
	}

	return DesignWindResult{
		ID:           req.ID,
		StationID:    req.StationID,
		Method:       method,
		SampleSize:   len(req.Gusts),
		Parameters:   est.Parameters(),
		DesignSpeeds: table,
		Measured:     est.Measured,
		ComputedAt:   clock.Now().UTC(),
	}, nil
}

// SerializeResult marshals a DesignWindResult into an OutputMessage.
func SerializeResult(result DesignWindResult) (OutputMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize design wind result: %w", err)
	}
	return OutputMessage{
		Key:   []byte(result.ID),
		Value: data,
		Headers: map[string]string{
			"method":      string(result.Method),
			"computed_at": result.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}
