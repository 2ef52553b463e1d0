package volunteer

import (
	"github.com/smallbiznis/impactmap/internal/volunteer/repository"
	"github.com/smallbiznis/impactmap/internal/volunteer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("volunteer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
