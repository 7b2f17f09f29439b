package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "wind-gust-samples", cfg.KafkaSourceTopic)
	assert.Equal(t, "design-wind-speeds", cfg.KafkaSinkTopic)
	assert.Equal(t, "storm-data-extremes", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, []float64{10, 20, 50, 100, 200, 500, 700, 1000}, cfg.ReturnPeriods)
	assert.Equal(t, 8, cfg.ThresholdCount)
	assert.Equal(t, domain.SpacingLinear, cfg.ThresholdSpacing)
	assert.Equal(t, 1.2, cfg.AirDensity)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("RETURN_PERIODS", "50, 500 ,2500")
	t.Setenv("POT_THRESHOLD_COUNT", "12")
	t.Setenv("POT_THRESHOLD_SPACING", "Geometric")
	t.Setenv("AIR_DENSITY", "1.225")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, []float64{50, 500, 2500}, cfg.ReturnPeriods)
	assert.Equal(t, 12, cfg.ThresholdCount)
	assert.Equal(t, domain.SpacingGeometric, cfg.ThresholdSpacing)
	assert.Equal(t, 1.225, cfg.AirDensity)
}

func TestConfig_Settings(t *testing.T) {
	t.Setenv("POT_THRESHOLD_COUNT", "5")
	t.Setenv("AIR_DENSITY", "1.1")

	cfg, err := Load()
	require.NoError(t, err)

	s := cfg.Settings()
	assert.Equal(t, domain.ThresholdGrid{Count: 5, Spacing: domain.SpacingLinear}, s.Thresholds)
	assert.Equal(t, 1.1, s.Constants.AirDensity)
	assert.Equal(t, domain.DefaultConstants().EulerGamma, s.Constants.EulerGamma)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidReturnPeriods(t *testing.T) {
	for _, v := range []string{"50,abc", "1", "0.5,10", ",", "NaN", "50,NaN", "Inf", "+Inf", "-Inf"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("RETURN_PERIODS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "RETURN_PERIODS")
		})
	}
}

func TestLoad_InvalidThresholdCount(t *testing.T) {
	for _, v := range []string{"1", "many", "5000"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("POT_THRESHOLD_COUNT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "POT_THRESHOLD_COUNT")
		})
	}
}

func TestLoad_InvalidThresholdSpacing(t *testing.T) {
	t.Setenv("POT_THRESHOLD_SPACING", "cubic")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POT_THRESHOLD_SPACING")
}

func TestLoad_InvalidAirDensity(t *testing.T) {
	t.Setenv("AIR_DENSITY", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIR_DENSITY")
}
