package pdf

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateProducesPDF(t *testing.T) {
	provider := New()

	reader, err := provider.GenerateCertificate(context.Background(), CertificateData{
		Name:            "Kim Minji",
		TotalHours:      "12.5",
		TotalActivities: 3,
		Level:           2,
		IssueDate:       "2026-10-19",
		Activities: []CertificateActivity{
			{Date: "2026-10-01", Title: "Beach cleanup", Category: "environment", Hours: "4", Organization: "Green Seoul"},
		},
	})
	require.NoError(t, err)

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestGenerateCertificateRequiresName(t *testing.T) {
	_, err := New().GenerateCertificate(context.Background(), CertificateData{})
	assert.Error(t, err)
}
