// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration. Optional backends are disabled
// when their URL is empty.
type Config struct {
	Addr     string `env:"DOCTORAT_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	Redis       RedisConfig
	Kafka       KafkaConfig
	Profile     ProfileConfig

	CycleEndMonth       int           `env:"ACADEMIC_CYCLE_END_MONTH" envDefault:"8"`
	CycleEndDay         int           `env:"ACADEMIC_CYCLE_END_DAY" envDefault:"31"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1h"`
	OutboxPollInterval  time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxMaxAttempts   int           `env:"OUTBOX_MAX_ATTEMPTS" envDefault:"5"`

	AdminToken string `env:"ADMIN_TOKEN"`

	OTLPEndpoint     string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampleRatio float64 `env:"OTEL_TRACE_SAMPLE_RATIO" envDefault:"1"`
}

type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	TopicPrefix string   `env:"KAFKA_TOPIC_PREFIX" envDefault:"doctorat"`
}

type ProfileConfig struct {
	BaseURL  string        `env:"PROFILE_BASE_URL"`
	Timeout  time.Duration `env:"PROFILE_TIMEOUT" envDefault:"2s"`
	CacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"5m"`
}

// FromEnv parses the environment and validates the result.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.CycleEndMonth < 1 || c.CycleEndMonth > 12 {
		return fmt.Errorf("ACADEMIC_CYCLE_END_MONTH must be within 1..12, got %d", c.CycleEndMonth)
	}
	last := time.Date(2001, time.Month(c.CycleEndMonth)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if c.CycleEndDay < 1 || c.CycleEndDay > last {
		return fmt.Errorf("ACADEMIC_CYCLE_END_DAY must be within 1..%d, got %d", last, c.CycleEndDay)
	}
	if c.OutboxMaxAttempts < 1 {
		return fmt.Errorf("OUTBOX_MAX_ATTEMPTS must be positive, got %d", c.OutboxMaxAttempts)
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACE_SAMPLE_RATIO must be within 0..1, got %v", c.TraceSampleRatio)
	}
	if c.ExpirySweepInterval <= 0 || c.OutboxPollInterval <= 0 {
		return fmt.Errorf("background intervals must be positive")
	}
	return nil
}

// UsesPostgres reports whether durable stores and the outbox are enabled.
func (c Config) UsesPostgres() bool { return c.DatabaseURL != "" }
