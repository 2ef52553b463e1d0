package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/impactmap/internal/organization/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateOrganization(ctx context.Context, org domain.Organization) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO organizations (id, name, slug, description, category, address, latitude, longitude, verified, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		org.ID,
		org.Name,
		org.Slug,
		org.Description,
		org.Category,
		org.Address,
		org.Latitude,
		org.Longitude,
		org.Verified,
		org.CreatedAt,
		org.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, category, address, latitude, longitude, verified, created_at, updated_at
		 FROM organizations WHERE id = ?`,
		id,
	).Scan(&org).Error
	if err != nil {
		return nil, err
	}
	if org.ID == 0 {
		return nil, nil
	}
	return &org, nil
}

func (r *repository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type verifiedHoursRow struct {
	OrganizationID snowflake.ID    `gorm:"column:organization_id"`
	Hours          decimal.Decimal `gorm:"column:hours"`
}

// ListWithStats adds verified hours per organization as exact decimals.
func (r *repository) ListWithStats(ctx context.Context) ([]domain.OrganizationWithStats, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}

	var rows []verifiedHoursRow
	err = r.db.WithContext(ctx).Raw(
		`SELECT organization_id, hours
		 FROM volunteer_activities
		 WHERE organization_id IS NOT NULL AND verification_status = 'verified'`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[snowflake.ID]int64, len(orgs))
	hours := make(map[snowflake.ID]decimal.Decimal, len(orgs))
	for _, row := range rows {
		counts[row.OrganizationID]++
		hours[row.OrganizationID] = hours[row.OrganizationID].Add(row.Hours)
	}

	items := make([]domain.OrganizationWithStats, 0, len(orgs))
	for _, org := range orgs {
		total, ok := hours[org.ID]
		if !ok {
			total = decimal.Zero
		}
		items = append(items, domain.OrganizationWithStats{
			Organization:        org,
			ActivityCount:       counts[org.ID],
			TotalVolunteerHours: total,
		})
	}
	return items, nil
}
