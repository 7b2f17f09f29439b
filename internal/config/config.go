package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Estimator configuration.
	ReturnPeriods    []float64
	ThresholdCount   int
	ThresholdSpacing domain.ThresholdSpacing
	AirDensity       float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	periods, err := parseReturnPeriods(sharedcfg.EnvOrDefault("RETURN_PERIODS", "10,20,50,100,200,500,700,1000"))
	if err != nil {
		return nil, err
	}

	thresholdCount, err := parseThresholdCount()
	if err != nil {
		return nil, err
	}

	spacing := domain.ThresholdSpacing(strings.ToLower(sharedcfg.EnvOrDefault("POT_THRESHOLD_SPACING", "linear")))
	if spacing != domain.SpacingLinear && spacing != domain.SpacingGeometric {
		return nil, fmt.Errorf("invalid POT_THRESHOLD_SPACING %q: want linear or geometric", spacing)
	}

	airDensity, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("AIR_DENSITY", "1.2"), 64)
	if err != nil || airDensity <= 0 {
		return nil, errors.New("invalid AIR_DENSITY")
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "wind-gust-samples"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "design-wind-speeds"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "storm-data-extremes"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		ReturnPeriods:    periods,
		ThresholdCount:   thresholdCount,
		ThresholdSpacing: spacing,
		AirDensity:       airDensity,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// Settings builds the estimator settings from the loaded configuration.
func (c *Config) Settings() domain.Settings {
	s := domain.DefaultSettings()
	s.Constants.AirDensity = c.AirDensity
	s.Thresholds = domain.ThresholdGrid{Count: c.ThresholdCount, Spacing: c.ThresholdSpacing}
	return s
}

// parseReturnPeriods parses a comma-separated list of return periods in years.
// Every period must be a finite number of years greater than one.
func parseReturnPeriods(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 1 {
			return nil, fmt.Errorf("invalid RETURN_PERIODS entry %q: want a number of years greater than 1", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("RETURN_PERIODS is required")
	}
	return out, nil
}

func parseThresholdCount() (int, error) {
	s := os.Getenv("POT_THRESHOLD_COUNT")
	if s == "" {
		return 8, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 1000 {
		return 0, errors.New("invalid POT_THRESHOLD_COUNT: want an integer between 2 and 1000")
	}
	return n, nil
}
