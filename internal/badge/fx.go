package badge

import (
	"github.com/smallbiznis/impactmap/internal/badge/repository"
	"github.com/smallbiznis/impactmap/internal/badge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("badge.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
