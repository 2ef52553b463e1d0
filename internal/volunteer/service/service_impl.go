package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/leveling"
	"github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	BadgeRepo badgedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	badgeRepo badgedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("volunteer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		badgeRepo: p.BadgeRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Response{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Response{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	user := domain.User{
		ID:               s.genID.Generate(),
		Name:             name,
		Email:            email,
		VerifiedHours:    decimal.Zero,
		ExperiencePoints: decimal.Zero,
		Level:            1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Response{}, domain.ErrEmailTaken
		}
		return domain.Response{}, db.StorageError(err)
	}

	s.log.Info("volunteer created", zap.String("user_id", user.ID.String()))
	return toResponse(&user), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, db.StorageError(err)
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Response, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return domain.Response{}, err
	}
	return toResponse(user), nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (domain.ProfileResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	earned, err := s.badgeRepo.ListEarnedByUser(ctx, s.db, user.ID)
	if err != nil {
		return domain.ProfileResponse{}, db.StorageError(err)
	}

	badges := make([]domain.EarnedBadgeResponse, 0, len(earned))
	for _, b := range earned {
		badges = append(badges, domain.ToEarnedBadgeResponse(b))
	}

	return domain.ProfileResponse{
		User:   toResponse(user),
		Badges: badges,
	}, nil
}

func (s *Service) load(ctx context.Context, value string) (*domain.User, error) {
	id, err := parseID(value)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, db.StorageError(err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(u *domain.User) domain.Response {
	return domain.Response{
		ID:                    u.ID.String(),
		Name:                  u.Name,
		Email:                 u.Email,
		VerifiedHours:         u.VerifiedHours.String(),
		ExperiencePoints:      leveling.Progress{ExperiencePoints: u.ExperiencePoints}.DisplayPoints(),
		Level:                 u.Level,
		VerifiedActivityCount: u.VerifiedActivityCount,
		DistinctLocationCount: u.DistinctLocationCount,
		DistinctCategoryCount: u.DistinctCategoryCount,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
