package verification

import (
	"github.com/smallbiznis/impactmap/internal/verification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("verification.service",
	fx.Provide(service.New),
)
