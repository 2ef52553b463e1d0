package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingBadges struct {
	synced []config.BadgeCatalog
	err    error
}

func (r *recordingBadges) Catalog(context.Context) ([]badgedomain.Response, error) {
	return nil, nil
}

func (r *recordingBadges) Sync(_ context.Context, catalog config.BadgeCatalog) (badgedomain.SyncResult, error) {
	r.synced = append(r.synced, catalog)
	return badgedomain.SyncResult{Created: len(catalog.Badges)}, r.err
}

func (r *recordingBadges) AwardEligible(context.Context, *gorm.DB, snowflake.ID, aggregationdomain.Aggregates) ([]badgedomain.Award, error) {
	return nil, nil
}

func TestEnsureBadgeCatalogSyncsCurrentCatalog(t *testing.T) {
	badges := &recordingBadges{}
	holder := config.NewStaticBadgeCatalogHolder(config.DefaultBadgeCatalog())

	require.NoError(t, EnsureBadgeCatalog(context.Background(), badges, holder, zap.NewNop()))

	require.Len(t, badges.synced, 1)
	assert.Equal(t, config.DefaultBadgeCatalog(), badges.synced[0])
}

func TestEnsureBadgeCatalogPropagatesErrors(t *testing.T) {
	badges := &recordingBadges{err: errors.New("db down")}
	holder := config.NewStaticBadgeCatalogHolder(config.DefaultBadgeCatalog())

	assert.Error(t, EnsureBadgeCatalog(context.Background(), badges, holder, nil))
	assert.Error(t, EnsureBadgeCatalog(context.Background(), nil, holder, nil))
}
