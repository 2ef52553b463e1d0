package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	"github.com/smallbiznis/impactmap/internal/aggregation/domain"
	"github.com/smallbiznis/impactmap/internal/aggregation/repository"
	"github.com/smallbiznis/impactmap/internal/testutil"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	volunteerrepository "github.com/smallbiznis/impactmap/internal/volunteer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func TestAggregateOnlyCountsVerified(t *testing.T) {
	conn := testutil.NewDB(t)
	node := testutil.NewNode(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	user := volunteerdomain.User{ID: node.Generate(), Name: "Budi", Email: "budi@example.com", Level: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conn.Create(&user).Error)

	place := "Balai Desa"
	for _, a := range []struct {
		hours    string
		category activitydomain.Category
		status   activitydomain.Status
		location *string
	}{
		{"2.5", activitydomain.CategoryEducation, activitydomain.StatusVerified, &place},
		{"4", activitydomain.CategoryMedical, activitydomain.StatusVerified, nil},
		{"8", activitydomain.CategoryMedical, activitydomain.StatusPending, nil},
		{"3", activitydomain.CategoryWelfare, activitydomain.StatusRejected, nil},
	} {
		require.NoError(t, conn.Create(&activitydomain.Activity{
			ID:                 node.Generate(),
			UserID:             user.ID,
			Title:              "Shift",
			Category:           a.category,
			ActivityDate:       datatypes.Date(now),
			Hours:              decimal.RequireFromString(a.hours),
			LocationName:       a.location,
			VerificationStatus: a.status,
			CreatedAt:          now,
			UpdatedAt:          now,
		}).Error)
	}

	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide(), VolunteerRepo: volunteerrepository.Provide()})

	agg, err := svc.Aggregate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, agg.VerifiedHours.Equal(decimal.RequireFromString("6.5")))
	assert.EqualValues(t, 2, agg.VerifiedActivityCount)
	assert.EqualValues(t, 1, agg.DistinctLocationCount)
	assert.EqualValues(t, 2, agg.DistinctCategoryCount)
}

func TestAggregateUnknownUser(t *testing.T) {
	conn := testutil.NewDB(t)
	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide(), VolunteerRepo: volunteerrepository.Provide()})

	_, err := svc.Aggregate(context.Background(), snowflake.ID(42))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Aggregate(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
