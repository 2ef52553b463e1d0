package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type SubmitRequest struct {
	UserID         string          `json:"user_id"`
	OrganizationID *string         `json:"organization_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	ActivityDate   string          `json:"activity_date"`
	StartTime      *string         `json:"start_time"`
	EndTime        *string         `json:"end_time"`
	Hours          decimal.Decimal `json:"hours"`
	LocationName   *string         `json:"location_name"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	Notes          string          `json:"notes"`
}

type ListRequest struct {
	UserID string
	Status string
}

type Response struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name,omitempty"`
	OrganizationID     *string   `json:"organization_id,omitempty"`
	OrganizationName   *string   `json:"organization_name,omitempty"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	ActivityDate       string    `json:"activity_date"`
	StartTime          *string   `json:"start_time,omitempty"`
	EndTime            *string   `json:"end_time,omitempty"`
	Hours              string    `json:"hours"`
	LocationName       *string   `json:"location_name,omitempty"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (Response, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrInvalidDate         = errors.New("invalid_activity_date")
	ErrInvalidTime         = errors.New("invalid_time")
	ErrInvalidHours        = errors.New("invalid_hours")
	ErrInvalidCoordinates  = errors.New("invalid_coordinates")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrNotFound            = errors.New("not_found")
	ErrConflict            = errors.New("status_conflict")
)

func ParseCategory(value string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(value))); c {
	case CategoryEnvironment, CategoryEducation, CategoryWelfare,
		CategoryCultureArts, CategoryMedical, CategoryDisasterRelief:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

func ParseStatus(value string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(value))); s {
	case StatusPending, StatusVerified, StatusRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

func ToResponse(view ActivityView) Response {
	a := view.Activity
	resp := Response{
		ID:                 a.ID.String(),
		UserID:             a.UserID.String(),
		UserName:           view.UserName,
		OrganizationName:   view.OrganizationName,
		Title:              a.Title,
		Description:        a.Description,
		Category:           string(a.Category),
		ActivityDate:       time.Time(a.ActivityDate).Format(DateLayout),
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		Hours:              a.Hours.String(),
		LocationName:       a.LocationName,
		Latitude:           a.Latitude,
		Longitude:          a.Longitude,
		Notes:              a.Notes,
		VerificationStatus: string(a.VerificationStatus),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.OrganizationID != nil {
		id := a.OrganizationID.String()
		resp.OrganizationID = &id
	}
	return resp
}
