package aggregation

import (
	"github.com/smallbiznis/impactmap/internal/aggregation/repository"
	"github.com/smallbiznis/impactmap/internal/aggregation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("aggregation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
