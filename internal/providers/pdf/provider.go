package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

var Module = fx.Module("pdf.provider",
	fx.Provide(New),
)

// Provider renders printable documents.
type Provider interface {
	GenerateCertificate(ctx context.Context, data CertificateData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateCertificate(ctx context.Context, data CertificateData) (io.Reader, error) {
	return nil, nil
}
