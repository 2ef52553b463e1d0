package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(ctx context.Context, id string) (*OrganizationResponse, error)
	List(ctx context.Context) ([]OrganizationResponse, error)
}

type CreateOrganizationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Verified    bool     `json:"verified"`
}

type OrganizationResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Description         string    `json:"description"`
	Category            string    `json:"category"`
	Address             *string   `json:"address,omitempty"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	Verified            bool      `json:"verified"`
	ActivityCount       int64     `json:"activity_count"`
	TotalVolunteerHours string    `json:"total_volunteer_hours"`
	CreatedAt           time.Time `json:"created_at"`
}

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
