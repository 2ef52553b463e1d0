package migration

import (
	"context"

	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/smallbiznis/impactmap/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, badges badgedomain.Service, holder *config.BadgeCatalogHolder, log *zap.Logger) error {
		if conn.Dialector.Name() == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := AutoMigrate(conn); err != nil {
			return err
		}

		return seed.EnsureBadgeCatalog(context.Background(), badges, holder, log)
	}),
)
