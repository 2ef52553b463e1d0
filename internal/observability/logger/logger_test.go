package logger

import (
	"context"
	"testing"

	obscontext "github.com/smallbiznis/impactmap/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAddsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := obscontext.WithRequestID(context.Background(), "req-1")
	ctx = obscontext.WithActorID(ctx, "42")
	WithUser(WithContext(ctx, base), " 42 ").Info("volunteer recomputed")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "42", fields["actor_id"])
	assert.Equal(t, "42", fields["user_id"])
}

func TestWithContextSkipsEmptyFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	WithContext(context.Background(), base).Info("startup")

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "actor_id")
}
