package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	badgerepository "github.com/smallbiznis/impactmap/internal/badge/repository"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/testutil"
	"github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/internal/volunteer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newVolunteerService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()
	conn := testutil.NewDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     testutil.NewNode(t),
		Clock:     clk,
		Repo:      repository.Provide(),
		BadgeRepo: badgerepository.Provide(),
	})
	return svc, conn, clk
}

func TestCreateStartsAtLevelOne(t *testing.T) {
	svc, _, _ := newVolunteerService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{Name: " Dewi ", Email: " Dewi@Example.com "})
	require.NoError(t, err)

	assert.Equal(t, "Dewi", resp.Name)
	assert.Equal(t, "dewi@example.com", resp.Email)
	assert.Equal(t, "0", resp.VerifiedHours)
	assert.Zero(t, resp.ExperiencePoints)
	assert.Equal(t, 1, resp.Level)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newVolunteerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "", Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "B", Email: "A@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestListNewestFirst(t *testing.T) {
	svc, _, clk := newVolunteerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "First", Email: "first@example.com"})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Second", Email: "second@example.com"})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Name)
	assert.Equal(t, "First", items[1].Name)
}

func TestGetProfileListsBadgesNewestFirst(t *testing.T) {
	svc, conn, _ := newVolunteerService(t)
	ctx := context.Background()
	node := testutil.NewNode(t)

	user, err := svc.Create(ctx, domain.CreateRequest{Name: "Dewi", Email: "dewi@example.com"})
	require.NoError(t, err)
	userID, err := parseID(user.ID)
	require.NoError(t, err)

	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i, code := range []string{"first-step", "enthusiast"} {
		badge := badgedomain.Badge{
			ID:               node.Generate(),
			Code:             code,
			Name:             code,
			RequirementType:  badgedomain.RequirementHours,
			RequirementValue: decimal.NewFromInt(int64(i + 1)),
			CreatedAt:        base,
			UpdatedAt:        base,
		}
		require.NoError(t, conn.Create(&badge).Error)
		require.NoError(t, conn.Create(&badgedomain.UserBadge{
			ID:       node.Generate(),
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}).Error)
	}

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dewi", profile.User.Name)
	require.Len(t, profile.Badges, 2)
	assert.Equal(t, "enthusiast", profile.Badges[0].Code)
	assert.Equal(t, "first-step", profile.Badges[1].Code)
}

func TestGetProfileErrors(t *testing.T) {
	svc, _, _ := newVolunteerService(t)

	_, err := svc.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetProfile(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
