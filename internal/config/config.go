package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	Debug           bool
	ShutdownTimeout time.Duration

	// ModelPath is the model artifact loaded once at startup.
	ModelPath string

	// Rate limiting for the predict routes. RateLimitRPS of 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// Prediction event publishing.
	KafkaBrokers          []string
	KafkaPredictionsTopic string
	EventsEnabled         bool
	PublishTimeout        time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	publishTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PUBLISH_TIMEOUT", "2s"))
	if err != nil || publishTimeout <= 0 {
		return nil, errors.New("invalid PUBLISH_TIMEOUT")
	}

	rps, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("RATE_LIMIT_RPS", "50"), 64)
	if err != nil || rps < 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS")
	}

	burst, err := strconv.Atoi(sharedcfg.EnvOrDefault("RATE_LIMIT_BURST", "100"))
	if err != nil || (rps > 0 && burst <= 0) {
		return nil, errors.New("invalid RATE_LIMIT_BURST")
	}

	debug, err := parseBool("DEBUG")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	eventsEnabled := len(brokers) > 0
	if v := os.Getenv("PREDICTION_EVENTS_ENABLED"); v != "" {
		eventsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		Debug:           debug,
		ShutdownTimeout: shutdownTimeout,

		ModelPath: sharedcfg.EnvOrDefault("MODEL_PATH", "model.json"),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		KafkaBrokers:          brokers,
		KafkaPredictionsTopic: sharedcfg.EnvOrDefault("KAFKA_PREDICTIONS_TOPIC", "air-quality-predictions"),
		EventsEnabled:         eventsEnabled,
		PublishTimeout:        publishTimeout,
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	if cfg.ModelPath == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("PREDICTION_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.EventsEnabled && cfg.KafkaPredictionsTopic == "" {
		return nil, errors.New("KAFKA_PREDICTIONS_TOPIC is required")
	}

	return cfg, nil
}

func parseBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid " + key)
	}
	return b, nil
}
