package service

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	"github.com/smallbiznis/impactmap/internal/certificate/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/leveling"
	"github.com/smallbiznis/impactmap/internal/providers/pdf"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	VolunteerRepo volunteerdomain.Repository
	ActivityRepo  activitydomain.Repository
	PDF           pdf.Provider
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	volunteerRepo volunteerdomain.Repository
	activityRepo  activitydomain.Repository
	pdf           pdf.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("certificate.service"),
		clock:         p.Clock,
		volunteerRepo: p.VolunteerRepo,
		activityRepo:  p.ActivityRepo,
		pdf:           p.PDF,
	}
}

func (s *Service) Build(ctx context.Context, userID string) (domain.Snapshot, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || id == 0 {
		return domain.Snapshot{}, domain.ErrInvalidUser
	}

	var (
		user       *volunteerdomain.User
		activities []activitydomain.ActivityView
	)
	verified := activitydomain.StatusVerified
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.volunteerRepo.FindByID(ctx, tx, id)
		if err != nil || user == nil {
			return err
		}
		activities, err = s.activityRepo.List(ctx, tx, activitydomain.ListFilter{
			UserID: &id,
			Status: &verified,
		})
		return err
	}, s.snapshotTxOptions())
	if err != nil {
		return domain.Snapshot{}, db.StorageError(err)
	}
	if user == nil {
		return domain.Snapshot{}, domain.ErrNotFound
	}

	issued := s.clock.Now()
	points := leveling.Progress{ExperiencePoints: user.ExperiencePoints}.DisplayPoints()

	items := make([]activitydomain.Response, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activitydomain.ToResponse(activity))
	}

	return domain.Snapshot{
		User:               toVolunteerResponse(user, points),
		VerifiedActivities: items,
		Totals: domain.Totals{
			VerifiedHours:         user.VerifiedHours.String(),
			VerifiedActivityCount: user.VerifiedActivityCount,
			ExperiencePoints:      points,
			Level:                 user.Level,
		},
		IssueDate: issued,
		CertificateData: domain.CertificateData{
			Name:            user.Name,
			TotalHours:      user.VerifiedHours.String(),
			TotalActivities: user.VerifiedActivityCount,
			Level:           user.Level,
			IssueDate:       issued.Format(domain.IssueDateLayout),
		},
	}, nil
}

func (s *Service) RenderPDF(ctx context.Context, userID string) (io.Reader, domain.Snapshot, error) {
	snapshot, err := s.Build(ctx, userID)
	if err != nil {
		return nil, domain.Snapshot{}, err
	}

	data := pdf.CertificateData{
		Name:            snapshot.CertificateData.Name,
		TotalHours:      snapshot.CertificateData.TotalHours,
		TotalActivities: snapshot.CertificateData.TotalActivities,
		Level:           snapshot.CertificateData.Level,
		ExperiencePoint: snapshot.Totals.ExperiencePoints,
		IssueDate:       snapshot.CertificateData.IssueDate,
	}
	for _, item := range snapshot.VerifiedActivities {
		row := pdf.CertificateActivity{
			Date:     item.ActivityDate,
			Title:    item.Title,
			Category: item.Category,
			Hours:    item.Hours,
		}
		if item.OrganizationName != nil {
			row.Organization = *item.OrganizationName
		}
		if item.LocationName != nil {
			row.Location = *item.LocationName
		}
		data.Activities = append(data.Activities, row)
	}

	reader, err := s.pdf.GenerateCertificate(ctx, data)
	if err != nil {
		s.log.Error("failed to render certificate", zap.String("user_id", snapshot.User.ID), zap.Error(err))
		return nil, domain.Snapshot{}, err
	}
	return reader, snapshot, nil
}

// Postgres needs repeatable read for both selects to see one snapshot; SQLite
// transactions are already serialized.
func (s *Service) snapshotTxOptions() *sql.TxOptions {
	if s.db.Dialector != nil && s.db.Dialector.Name() == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

func toVolunteerResponse(u *volunteerdomain.User, points int64) volunteerdomain.Response {
	return volunteerdomain.Response{
		ID:                    u.ID.String(),
		Name:                  u.Name,
		Email:                 u.Email,
		VerifiedHours:         u.VerifiedHours.String(),
		ExperiencePoints:      points,
		Level:                 u.Level,
		VerifiedActivityCount: u.VerifiedActivityCount,
		DistinctLocationCount: u.DistinctLocationCount,
		DistinctCategoryCount: u.DistinctCategoryCount,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
