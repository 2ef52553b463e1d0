package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/activity/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	organizationdomain "github.com/smallbiznis/impactmap/internal/organization/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	VolunteerRepo volunteerdomain.Repository
	OrgRepo       organizationdomain.Repository
	Metrics       *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	volunteerRepo volunteerdomain.Repository
	orgRepo       organizationdomain.Repository
	metrics       *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("activity.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		volunteerRepo: p.VolunteerRepo,
		orgRepo:       p.OrgRepo,
		metrics:       p.Metrics,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (domain.Response, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		return domain.Response{}, domain.ErrInvalidUser
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Response{}, domain.ErrInvalidTitle
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return domain.Response{}, err
	}

	date, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.ActivityDate))
	if err != nil {
		return domain.Response{}, domain.ErrInvalidDate
	}

	if !req.Hours.IsPositive() || !req.Hours.Equal(req.Hours.Truncate(db.DecimalScale)) {
		return domain.Response{}, domain.ErrInvalidHours
	}

	startTime, err := parseClock(req.StartTime)
	if err != nil {
		return domain.Response{}, err
	}
	endTime, err := parseClock(req.EndTime)
	if err != nil {
		return domain.Response{}, err
	}

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return domain.Response{}, err
	}

	user, err := s.volunteerRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.Response{}, db.StorageError(err)
	}
	if user == nil {
		return domain.Response{}, domain.ErrUserNotFound
	}

	var orgID *snowflake.ID
	var orgName *string
	if req.OrganizationID != nil && strings.TrimSpace(*req.OrganizationID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(*req.OrganizationID))
		if err != nil || id == 0 {
			return domain.Response{}, domain.ErrInvalidOrganization
		}
		org, err := s.orgRepo.FindByID(ctx, id)
		if err != nil {
			return domain.Response{}, db.StorageError(err)
		}
		if org == nil {
			return domain.Response{}, domain.ErrInvalidOrganization
		}
		orgID = &id
		orgName = &org.Name
	}

	now := s.clock.Now()
	activity := domain.Activity{
		ID:                 s.genID.Generate(),
		UserID:             userID,
		OrganizationID:     orgID,
		Title:              title,
		Description:        strings.TrimSpace(req.Description),
		Category:           category,
		ActivityDate:       datatypes.Date(date),
		StartTime:          startTime,
		EndTime:            endTime,
		Hours:              req.Hours,
		LocationName:       trimOptional(req.LocationName),
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Notes:              strings.TrimSpace(req.Notes),
		VerificationStatus: domain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, &activity); err != nil {
		return domain.Response{}, db.StorageError(err)
	}

	s.metrics.RecordActivitySubmitted(ctx, string(category))
	s.log.Info("activity submitted",
		zap.String("activity_id", activity.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("category", string(category)),
	)

	return domain.ToResponse(domain.ActivityView{
		Activity:         activity,
		UserName:         user.Name,
		OrganizationName: orgName,
	}), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var filter domain.ListFilter
	if value := strings.TrimSpace(req.UserID); value != "" {
		userID, err := snowflake.ParseString(value)
		if err != nil || userID == 0 {
			return nil, domain.ErrInvalidUser
		}
		filter.UserID = &userID
	}
	if value := strings.TrimSpace(req.Status); value != "" {
		status, err := domain.ParseStatus(value)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, db.StorageError(err)
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, domain.ToResponse(item))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Response, error) {
	activityID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || activityID == 0 {
		return domain.Response{}, domain.ErrInvalidID
	}

	activity, err := s.repo.FindByID(ctx, s.db, activityID)
	if err != nil {
		return domain.Response{}, db.StorageError(err)
	}
	if activity == nil {
		return domain.Response{}, domain.ErrNotFound
	}

	return domain.ToResponse(domain.ActivityView{Activity: *activity}), nil
}

func parseClock(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", trimmed)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}
	formatted := parsed.Format("15:04")
	return &formatted, nil
}

func validateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return domain.ErrInvalidCoordinates
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return domain.ErrInvalidCoordinates
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
