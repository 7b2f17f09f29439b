package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawMessage(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"id":"req-1","method":"gumbel"}`),
		Topic:     "wind-gust-samples",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("bom")},
		},
	}

	raw := mapMessageToRawMessage(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"id":"req-1","method":"gumbel"}`, string(raw.Value))
	assert.Equal(t, "wind-gust-samples", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "bom", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	result := domain.DesignWindResult{
		ID:         "req-1",
		StationID:  "YSSY",
		Method:     domain.MethodXIMIS,
		SampleSize: 12,
		Parameters: map[string]float64{"slope": 2.5, "intercept": 20, "storm_rate": 4},
		DesignSpeeds: []domain.DesignSpeed{
			{ReturnPeriod: 50, Speed: 33.2, Pressure: 661.3},
		},
		ComputedAt: now,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("req-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"method":"ximis"`)

	var decoded domain.DesignWindResult
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, result.DesignSpeeds, decoded.DesignSpeeds)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "computed_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "method", msg.Headers[1].Key)
	assert.Equal(t, []byte("ximis"), msg.Headers[1].Value)
}
