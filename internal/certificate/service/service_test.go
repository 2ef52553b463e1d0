package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	activityrepository "github.com/smallbiznis/impactmap/internal/activity/repository"
	"github.com/smallbiznis/impactmap/internal/certificate/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/providers/pdf"
	"github.com/smallbiznis/impactmap/internal/testutil"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	volunteerrepository "github.com/smallbiznis/impactmap/internal/volunteer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type capturePDF struct {
	data pdf.CertificateData
}

func (c *capturePDF) GenerateCertificate(ctx context.Context, data pdf.CertificateData) (io.Reader, error) {
	c.data = data
	return strings.NewReader("%PDF-"), nil
}

func TestBuildSnapshot(t *testing.T) {
	conn := testutil.NewDB(t)
	node := testutil.NewNode(t)
	clk := clock.NewFakeClock(time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC))
	renderer := &capturePDF{}
	svc := New(Params{
		DB:            conn,
		Log:           zap.NewNop(),
		Clock:         clk,
		VolunteerRepo: volunteerrepository.Provide(),
		ActivityRepo:  activityrepository.Provide(),
		PDF:           renderer,
	})

	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	user := volunteerdomain.User{
		ID:                    node.Generate(),
		Name:                  "Made Wirawan",
		Email:                 "made@example.com",
		VerifiedHours:         decimal.RequireFromString("12.5"),
		ExperiencePoints:      decimal.NewFromInt(125),
		Level:                 2,
		VerifiedActivityCount: 2,
		CreatedAt:             created,
		UpdatedAt:             created,
	}
	require.NoError(t, conn.Create(&user).Error)

	for _, a := range []struct {
		title  string
		date   time.Time
		hours  string
		status activitydomain.Status
	}{
		{"Older", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "4.5", activitydomain.StatusVerified},
		{"Newer", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), "8", activitydomain.StatusVerified},
		{"Waiting", time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), "3", activitydomain.StatusPending},
	} {
		require.NoError(t, conn.Create(&activitydomain.Activity{
			ID:                 node.Generate(),
			UserID:             user.ID,
			Title:              a.title,
			Category:           activitydomain.CategoryCultureArts,
			ActivityDate:       datatypes.Date(a.date),
			Hours:              decimal.RequireFromString(a.hours),
			VerificationStatus: a.status,
			CreatedAt:          created,
			UpdatedAt:          created,
		}).Error)
	}

	snapshot, err := svc.Build(context.Background(), user.ID.String())
	require.NoError(t, err)

	require.Len(t, snapshot.VerifiedActivities, 2)
	assert.Equal(t, "Newer", snapshot.VerifiedActivities[0].Title)
	assert.Equal(t, "Older", snapshot.VerifiedActivities[1].Title)
	assert.Equal(t, "12.5", snapshot.Totals.VerifiedHours)
	assert.EqualValues(t, 125, snapshot.Totals.ExperiencePoints)
	assert.Equal(t, 2, snapshot.Totals.Level)
	assert.Equal(t, clk.Now(), snapshot.IssueDate)
	assert.Equal(t, domain.CertificateData{
		Name:            "Made Wirawan",
		TotalHours:      "12.5",
		TotalActivities: 2,
		Level:           2,
		IssueDate:       "2026-10-19",
	}, snapshot.CertificateData)

	reader, _, err := svc.RenderPDF(context.Background(), user.ID.String())
	require.NoError(t, err)
	require.NotNil(t, reader)
	assert.Equal(t, "Made Wirawan", renderer.data.Name)
	require.Len(t, renderer.data.Activities, 2)
	assert.Equal(t, "2026-10-02", renderer.data.Activities[0].Date)
}

func TestBuildUnknownUser(t *testing.T) {
	conn := testutil.NewDB(t)
	svc := New(Params{
		DB:            conn,
		Log:           zap.NewNop(),
		Clock:         clock.New(),
		VolunteerRepo: volunteerrepository.Provide(),
		ActivityRepo:  activityrepository.Provide(),
		PDF:           &capturePDF{},
	})

	_, err := svc.Build(context.Background(), "31337")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Build(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, _, err = svc.RenderPDF(context.Background(), "31337")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
