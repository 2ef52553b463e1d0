package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsUnknownKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/activities"),
		attribute.String("user.email", "someone@example.com"),
		attribute.String("activity_id", "42"),
	)

	assert.Len(t, attrs, 2)
	for _, attr := range attrs {
		assert.NotEqual(t, attribute.Key("user.email"), attr.Key)
	}
}

func TestSafeErrorKeepsOnlyPrefix(t *testing.T) {
	err := SafeError(errors.New("storage_failure: ERROR: relation \"users\" does not exist"))
	assert.EqualError(t, err, "storage_failure")
	assert.NoError(t, SafeError(nil))
}
