package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.CycleEndMonth)
	assert.Equal(t, 31, cfg.CycleEndDay)
	assert.Equal(t, time.Hour, cfg.ExpirySweepInterval)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, 5, cfg.OutboxMaxAttempts)
	assert.Equal(t, "doctorat", cfg.Kafka.TopicPrefix)
	assert.Equal(t, 2*time.Second, cfg.Profile.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Profile.CacheTTL)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
	assert.False(t, cfg.UsesPostgres())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DOCTORAT_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/doctorat")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PROFILE_TIMEOUT", "750ms")
	t.Setenv("ACADEMIC_CYCLE_END_MONTH", "9")
	t.Setenv("ACADEMIC_CYCLE_END_DAY", "30")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, cfg.Profile.Timeout)
	assert.Equal(t, 9, cfg.CycleEndMonth)
}

func TestFromEnv_RejectsImpossibleCycleEnd(t *testing.T) {
	t.Setenv("ACADEMIC_CYCLE_END_MONTH", "2")
	t.Setenv("ACADEMIC_CYCLE_END_DAY", "30")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACADEMIC_CYCLE_END_DAY")
}

func TestFromEnv_RejectsBadDuration(t *testing.T) {
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_RejectsSampleRatioOutOfRange(t *testing.T) {
	t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "1.5")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_TRACE_SAMPLE_RATIO")
}
