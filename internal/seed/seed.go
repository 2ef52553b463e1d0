package seed

import (
	"context"
	"errors"
	"time"

	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/config"
	"go.uber.org/zap"
)

const syncTimeout = 30 * time.Second

// EnsureBadgeCatalog syncs the configured badge catalog and keeps it in sync
// whenever the catalog file is reloaded.
func EnsureBadgeCatalog(ctx context.Context, badges badgedomain.Service, holder *config.BadgeCatalogHolder, log *zap.Logger) error {
	if badges == nil || holder == nil {
		return errors.New("seed badge service and catalog are required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	if _, err := badges.Sync(ctx, holder.Get()); err != nil {
		return err
	}

	holder.OnChange(func(catalog config.BadgeCatalog) {
		syncCtx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		result, err := badges.Sync(syncCtx, catalog)
		if err != nil {
			log.Error("badge catalog resync failed", zap.Error(err))
			return
		}
		log.Info("badge catalog resynced",
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
		)
	})
	return nil
}
