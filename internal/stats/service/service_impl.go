package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/impactmap/internal/stats/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("stats.service"),
		repo: p.Repo,
	}
}

func (s *Service) Global(ctx context.Context) (domain.GlobalStats, error) {
	users, err := s.repo.CountUsers(ctx, s.db)
	if err != nil {
		return domain.GlobalStats{}, db.StorageError(err)
	}

	rows, err := s.repo.VerifiedHours(ctx, s.db)
	if err != nil {
		return domain.GlobalStats{}, db.StorageError(err)
	}

	total, perCategory := summarize(rows)
	return domain.GlobalStats{
		TotalUsers:              users,
		TotalVerifiedActivities: int64(len(rows)),
		TotalVerifiedHours:      total.String(),
		PerCategory:             perCategory,
	}, nil
}

// summarize adds hours as exact decimals. Categories are ordered by
// activity count desc, then name.
func summarize(rows []domain.HoursRow) (decimal.Decimal, []domain.CategoryStat) {
	total := decimal.Zero
	counts := make(map[string]int64)
	hours := make(map[string]decimal.Decimal)
	for _, row := range rows {
		total = total.Add(row.Hours)
		counts[row.Category]++
		hours[row.Category] = hours[row.Category].Add(row.Hours)
	}

	perCategory := make([]domain.CategoryStat, 0, len(counts))
	for category, count := range counts {
		perCategory = append(perCategory, domain.CategoryStat{
			Category: category,
			Count:    count,
			Hours:    hours[category].String(),
		})
	}
	sort.Slice(perCategory, func(i, j int) bool {
		if perCategory[i].Count != perCategory[j].Count {
			return perCategory[i].Count > perCategory[j].Count
		}
		return perCategory[i].Category < perCategory[j].Category
	})
	return total, perCategory
}

func (s *Service) MapData(ctx context.Context) (domain.MapData, error) {
	activityRows, err := s.repo.MapActivities(ctx, s.db)
	if err != nil {
		return domain.MapData{}, db.StorageError(err)
	}

	orgRows, err := s.repo.MapOrganizations(ctx, s.db)
	if err != nil {
		return domain.MapData{}, db.StorageError(err)
	}

	out := domain.MapData{
		Activities:    make([]domain.MapActivity, 0, len(activityRows)),
		Organizations: make([]domain.MapOrganization, 0, len(orgRows)),
	}
	for _, row := range activityRows {
		out.Activities = append(out.Activities, domain.MapActivity{
			ID:               row.ID.String(),
			Title:            row.Title,
			Category:         row.Category,
			Hours:            row.Hours.String(),
			LocationName:     row.LocationName,
			Latitude:         row.Latitude,
			Longitude:        row.Longitude,
			ActivityDate:     row.ActivityDate.Format("2006-01-02"),
			UserName:         row.UserName,
			OrganizationName: row.OrganizationName,
		})
	}
	for _, row := range orgRows {
		out.Organizations = append(out.Organizations, domain.MapOrganization{
			ID:            row.ID.String(),
			Name:          row.Name,
			Category:      row.Category,
			Address:       row.Address,
			Latitude:      row.Latitude,
			Longitude:     row.Longitude,
			ActivityCount: row.ActivityCount,
		})
	}
	return out, nil
}
