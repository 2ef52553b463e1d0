package domain

import "context"

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Hours    string `json:"hours"`
}

type GlobalStats struct {
	TotalUsers              int64          `json:"totalUsers"`
	TotalVerifiedActivities int64          `json:"totalActivities"`
	TotalVerifiedHours      string         `json:"totalHours"`
	PerCategory             []CategoryStat `json:"categoryStats"`
}

type MapActivity struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Category         string  `json:"category"`
	Hours            string  `json:"hours"`
	LocationName     *string `json:"location_name,omitempty"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ActivityDate     string  `json:"activity_date"`
	UserName         string  `json:"user_name"`
	OrganizationName *string `json:"organization_name,omitempty"`
}

type MapOrganization struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Address       *string `json:"address,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ActivityCount int64   `json:"activity_count"`
}

type MapData struct {
	Activities    []MapActivity     `json:"activities"`
	Organizations []MapOrganization `json:"organizations"`
}

type Service interface {
	Global(ctx context.Context) (GlobalStats, error)
	MapData(ctx context.Context) (MapData, error)
}
