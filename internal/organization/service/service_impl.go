package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/impactmap/internal/organization/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
	log   *zap.Logger
}

func NewService(db *gorm.DB, repo domain.Repository, genID *snowflake.Node, log *zap.Logger) domain.Service {
	return &service{
		db:    db,
		repo:  repo,
		genID: genID,
		log:   log.Named("organization.service"),
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.OrganizationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, domain.ErrInvalidCategory
	}

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orgID := s.genID.Generate()
	org := domain.Organization{
		ID:          orgID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Address:     trimOptional(req.Address),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Verified:    req.Verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		taken, err := repo.ExistsBySlug(ctx, org.Slug)
		if err != nil {
			return err
		}
		if taken {
			org.Slug = org.Slug + "-" + orgID.String()
		}
		return repo.CreateOrganization(ctx, org)
	})
	if err != nil {
		return nil, db.StorageError(err)
	}

	s.log.Info("organization created",
		zap.String("organization_id", orgID.String()),
		zap.String("slug", org.Slug),
	)

	resp := toResponse(domain.OrganizationWithStats{Organization: org, TotalVolunteerHours: decimal.Zero})
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.OrganizationResponse, error) {
	orgID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, db.StorageError(err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(domain.OrganizationWithStats{Organization: *org, TotalVolunteerHours: decimal.Zero})
	return &resp, nil
}

func (s *service) List(ctx context.Context) ([]domain.OrganizationResponse, error) {
	items, err := s.repo.ListWithStats(ctx)
	if err != nil {
		return nil, db.StorageError(err)
	}

	resp := make([]domain.OrganizationResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
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

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(item domain.OrganizationWithStats) domain.OrganizationResponse {
	return domain.OrganizationResponse{
		ID:                  item.ID.String(),
		Name:                item.Name,
		Slug:                item.Slug,
		Description:         item.Description,
		Category:            item.Category,
		Address:             item.Address,
		Latitude:            item.Latitude,
		Longitude:           item.Longitude,
		Verified:            item.Verified,
		ActivityCount:       item.ActivityCount,
		TotalVolunteerHours: item.TotalVolunteerHours.String(),
		CreatedAt:           item.CreatedAt,
	}
}
