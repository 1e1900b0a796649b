package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NeoWs feed configuration.
	NeoWsBaseURL string
	NeoWsAPIKey  string
	NeoWsTimeout time.Duration

	// Hazard report publishing configuration.
	KafkaBrokers     []string
	KafkaReportTopic string
	ReportsEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	neowsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NEOWS_TIMEOUT", "100s"))
	if err != nil || neowsTimeout <= 0 {
		return nil, errors.New("invalid NEOWS_TIMEOUT")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	reportsEnabled := len(brokers) > 0
	if v := os.Getenv("REPORTS_ENABLED"); v != "" {
		reportsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NeoWsBaseURL: sharedcfg.EnvOrDefault("NEOWS_BASE_URL", "https://api.nasa.gov/neo/rest/v1/feed"),
		NeoWsAPIKey:  sharedcfg.EnvOrDefault("NEOWS_API_KEY", "DEMO_KEY"),
		NeoWsTimeout: neowsTimeout,

		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "hazard-reports"),
		ReportsEnabled:   reportsEnabled,
	}

	if cfg.ReportsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("REPORTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.ReportsEnabled && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required")
	}

	return cfg, nil
}
