package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	organizationdomain "github.com/smallbiznis/impactmap/internal/organization/domain"
	"github.com/smallbiznis/impactmap/internal/stats/domain"
	"github.com/smallbiznis/impactmap/internal/stats/repository"
	"github.com/smallbiznis/impactmap/internal/testutil"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func float(v float64) *float64 { return &v }

func seedActivity(t *testing.T, conn *gorm.DB, node *snowflake.Node, userID snowflake.ID, orgID *snowflake.ID, category activitydomain.Category, hours string, status activitydomain.Status, lat, lng *float64, date time.Time) {
	t.Helper()
	require.NoError(t, conn.Create(&activitydomain.Activity{
		ID:                 node.Generate(),
		UserID:             userID,
		OrganizationID:     orgID,
		Title:              string(category) + " day",
		Category:           category,
		ActivityDate:       datatypes.Date(date),
		Hours:              decimal.RequireFromString(hours),
		Latitude:           lat,
		Longitude:          lng,
		VerificationStatus: status,
		CreatedAt:          date,
		UpdatedAt:          date,
	}).Error)
}

func TestGlobalAndMapData(t *testing.T) {
	conn := testutil.NewDB(t)
	node := testutil.NewNode(t)
	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide()})
	ctx := context.Background()
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	users := make([]volunteerdomain.User, 0, 2)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		u := volunteerdomain.User{ID: node.Generate(), Name: email, Email: email, Level: 1, CreatedAt: day, UpdatedAt: day}
		require.NoError(t, conn.Create(&u).Error)
		users = append(users, u)
	}

	verifiedOrg := organizationdomain.Organization{
		ID: node.Generate(), Name: "Klinik Desa", Slug: "klinik-desa", Category: "medical",
		Latitude: float(-8.6), Longitude: float(115.2), Verified: true, CreatedAt: day, UpdatedAt: day,
	}
	hiddenOrg := organizationdomain.Organization{
		ID: node.Generate(), Name: "Belum Terverifikasi", Slug: "belum", Category: "welfare",
		Latitude: float(-8.7), Longitude: float(115.1), CreatedAt: day, UpdatedAt: day,
	}
	require.NoError(t, conn.Create(&verifiedOrg).Error)
	require.NoError(t, conn.Create(&hiddenOrg).Error)

	seedActivity(t, conn, node, users[0].ID, &verifiedOrg.ID, activitydomain.CategoryMedical, "3", activitydomain.StatusVerified, float(-8.61), float(115.21), day)
	seedActivity(t, conn, node, users[0].ID, nil, activitydomain.CategoryMedical, "2", activitydomain.StatusVerified, nil, nil, day.AddDate(0, 0, 1))
	seedActivity(t, conn, node, users[1].ID, nil, activitydomain.CategoryEnvironment, "4.5", activitydomain.StatusVerified, float(-8.5), float(115.3), day.AddDate(0, 0, 2))
	seedActivity(t, conn, node, users[1].ID, nil, activitydomain.CategoryEducation, "6", activitydomain.StatusPending, float(-8.4), float(115.4), day)

	stats, err := svc.Global(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.TotalVerifiedActivities)
	assert.Equal(t, "9.5", stats.TotalVerifiedHours)
	require.Len(t, stats.PerCategory, 2)
	assert.Equal(t, "medical", stats.PerCategory[0].Category)
	assert.EqualValues(t, 2, stats.PerCategory[0].Count)
	assert.Equal(t, "5", stats.PerCategory[0].Hours)
	assert.Equal(t, "environment", stats.PerCategory[1].Category)

	data, err := svc.MapData(ctx)
	require.NoError(t, err)
	require.Len(t, data.Activities, 2)
	assert.Equal(t, "environment", data.Activities[0].Category)
	assert.Equal(t, "2026-10-03", data.Activities[0].ActivityDate)
	assert.Equal(t, "medical", data.Activities[1].Category)
	require.NotNil(t, data.Activities[1].OrganizationName)
	assert.Equal(t, "Klinik Desa", *data.Activities[1].OrganizationName)

	require.Len(t, data.Organizations, 1)
	assert.Equal(t, "Klinik Desa", data.Organizations[0].Name)
	assert.EqualValues(t, 1, data.Organizations[0].ActivityCount)
}

func TestGlobalStatsEmpty(t *testing.T) {
	conn := testutil.NewDB(t)
	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide()})

	stats, err := svc.Global(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Equal(t, "0", stats.TotalVerifiedHours)
	assert.Empty(t, stats.PerCategory)

	data, err := svc.MapData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Activities)
	assert.Empty(t, data.Organizations)
}

func TestGlobalStatsKeepsFractionalHoursExact(t *testing.T) {
	conn := testutil.NewDB(t)
	node := testutil.NewNode(t)
	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide()})
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	user := volunteerdomain.User{ID: node.Generate(), Name: "Sari", Email: "sari@example.com", Level: 1, CreatedAt: day, UpdatedAt: day}
	require.NoError(t, conn.Create(&user).Error)

	seedActivity(t, conn, node, user.ID, nil, activitydomain.CategoryWelfare, "0.1", activitydomain.StatusVerified, nil, nil, day)
	seedActivity(t, conn, node, user.ID, nil, activitydomain.CategoryWelfare, "0.2", activitydomain.StatusVerified, nil, nil, day)

	stats, err := svc.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.3", stats.TotalVerifiedHours)
	require.Len(t, stats.PerCategory, 1)
	assert.Equal(t, "0.3", stats.PerCategory[0].Hours)
}

func TestSummarizeOrdersByCountThenCategory(t *testing.T) {
	rows := []domain.HoursRow{
		{Category: "education", Hours: decimal.RequireFromString("1.25")},
		{Category: "culture-arts", Hours: decimal.RequireFromString("2")},
		{Category: "medical", Hours: decimal.RequireFromString("0.5")},
		{Category: "medical", Hours: decimal.RequireFromString("0.25")},
	}

	total, perCategory := summarize(rows)
	assert.Equal(t, "4", total.String())
	require.Len(t, perCategory, 3)
	assert.Equal(t, "medical", perCategory[0].Category)
	assert.Equal(t, "0.75", perCategory[0].Hours)
	assert.Equal(t, "culture-arts", perCategory[1].Category)
	assert.Equal(t, "education", perCategory[2].Category)
}
