package metrics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	PipelineReasonDeadlineExceeded     = "deadline_exceeded"
	PipelineReasonDBLockTimeout        = "db_lock_timeout"
	PipelineReasonSerializationFailure = "serialization_failure"
	PipelineReasonUniqueViolation      = "unique_violation"
	PipelineReasonLockUnavailable      = "lock_unavailable"
	PipelineReasonUnknown              = "unknown"
)

const (
	PipelineStageTransition = "transition"
	PipelineStageAggregate  = "aggregate"
	PipelineStageLevel      = "level"
	PipelineStageBadges     = "badges"
)

const (
	PipelineTriggerTransition = "transition"
	PipelineTriggerRepair     = "repair"
	PipelineTriggerManual     = "manual"
)

// ErrLockUnavailable is reported by lock backends that gave up acquiring a key.
var ErrLockUnavailable = errors.New("lock_unavailable")

// PipelineMetrics tracks the verification recompute pipeline.
type PipelineMetrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	lockWait    prometheus.Observer
	transitions *prometheus.CounterVec
}

var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *PipelineMetrics
)

// Pipeline returns the singleton pipeline metrics registry.
func Pipeline() *PipelineMetrics {
	return PipelineWithConfig(Config{})
}

// PipelineWithConfig returns the singleton pipeline metrics registry using config labels.
func PipelineWithConfig(cfg Config) *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = newPipelineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return pipelineMetrics
}

func newPipelineMetrics(registerer prometheus.Registerer, cfg Config) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	constLabels := serviceLabels(cfg)

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "impactmap_recompute_runs_total",
		Help:        "Recompute pipeline runs by trigger.",
		ConstLabels: constLabels,
	}, []string{"trigger"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "impactmap_recompute_duration_seconds",
		Help:        "Recompute pipeline latency including the user lock.",
		Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		ConstLabels: constLabels,
	}, []string{"trigger"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "impactmap_recompute_errors_total",
		Help:        "Recompute pipeline failures by stage and low-cardinality reason.",
		ConstLabels: constLabels,
	}, []string{"stage", "reason"})
	lockWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "impactmap_user_lock_wait_seconds",
		Help:        "Time spent waiting for the per-user recompute lock.",
		Buckets:     []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: constLabels,
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "impactmap_verification_status_transitions_total",
		Help:        "Committed activity verification transitions.",
		ConstLabels: constLabels,
	}, []string{"from", "to"})

	registerer.MustRegister(runs, duration, errs, lockWait, transitions)

	return &PipelineMetrics{
		runs:        runs,
		duration:    duration,
		errors:      errs,
		lockWait:    lockWait,
		transitions: transitions,
	}
}

// ObserveRun records a completed pipeline run.
func (m *PipelineMetrics) ObserveRun(trigger string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(trigger).Inc()
	m.duration.WithLabelValues(trigger).Observe(elapsed.Seconds())
}

// IncError records a pipeline failure at the given stage.
func (m *PipelineMetrics) IncError(stage string, err error) {
	if m == nil || err == nil {
		return
	}
	m.errors.WithLabelValues(stage, ClassifyPipelineReason(err)).Inc()
}

// ObserveLockWait records how long the per-user lock took to acquire.
func (m *PipelineMetrics) ObserveLockWait(elapsed time.Duration) {
	if m == nil {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	m.lockWait.Observe(elapsed.Seconds())
}

// IncTransition records a committed status change.
func (m *PipelineMetrics) IncTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// ClassifyPipelineReason maps pipeline errors to low-cardinality reasons.
func ClassifyPipelineReason(err error) string {
	if err == nil {
		return PipelineReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return PipelineReasonDeadlineExceeded
	}
	if errors.Is(err, ErrLockUnavailable) {
		return PipelineReasonLockUnavailable
	}
	if hasPGCode(err, "55P03") {
		return PipelineReasonDBLockTimeout
	}
	if hasPGCode(err, "40001") {
		return PipelineReasonSerializationFailure
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPGCode(err, "23505") {
		return PipelineReasonUniqueViolation
	}
	return PipelineReasonUnknown
}

// IsRetryable reports whether a recompute failure is worth retrying.
func IsRetryable(err error) bool {
	switch ClassifyPipelineReason(err) {
	case PipelineReasonDeadlineExceeded,
		PipelineReasonDBLockTimeout,
		PipelineReasonSerializationFailure,
		PipelineReasonLockUnavailable:
		return true
	default:
		return false
	}
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
