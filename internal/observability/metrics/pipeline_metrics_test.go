package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyPipelineReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: PipelineReasonDeadlineExceeded},
		{name: "lock_unavailable", err: fmt.Errorf("user 7: %w", ErrLockUnavailable), want: PipelineReasonLockUnavailable},
		{name: "db_lock_timeout", err: &pgconn.PgError{Code: "55P03"}, want: PipelineReasonDBLockTimeout},
		{name: "serialization_failure", err: &pgconn.PgError{Code: "40001"}, want: PipelineReasonSerializationFailure},
		{name: "unique_violation", err: gorm.ErrDuplicatedKey, want: PipelineReasonUniqueViolation},
		{name: "unknown", err: errors.New("boom"), want: PipelineReasonUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPipelineReason(tc.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(ErrLockUnavailable))
	assert.False(t, IsRetryable(gorm.ErrDuplicatedKey))
	assert.False(t, IsRetryable(nil))
}

func TestPipelineMetricsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newPipelineMetrics(registry, Config{ServiceName: "impactmap", Environment: "test"})

	m.ObserveRun(PipelineTriggerTransition, 20*time.Millisecond)
	m.ObserveRun(PipelineTriggerTransition, 10*time.Millisecond)
	m.IncError(PipelineStageBadges, &pgconn.PgError{Code: "55P03"})
	m.IncTransition("pending", "verified")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.runs.WithLabelValues(PipelineTriggerTransition)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errors.WithLabelValues(PipelineStageBadges, PipelineReasonDBLockTimeout)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("pending", "verified")))
}

func TestHTTPMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := newHTTPMetrics(registry, Config{ServiceName: "impactmap", Environment: "test"})
	assert.NoError(t, err)

	m.Observe("GET", "/api/stats", 200, 5*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/stats", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}
