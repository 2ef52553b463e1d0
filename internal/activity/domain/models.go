package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryEnvironment    Category = "environment"
	CategoryEducation      Category = "education"
	CategoryWelfare        Category = "welfare"
	CategoryCultureArts    Category = "culture-arts"
	CategoryMedical        Category = "medical"
	CategoryDisasterRelief Category = "disaster-relief"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Activity is a volunteer submission. Hours count toward totals only while
// the status is verified.
type Activity struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	UserID             snowflake.ID    `gorm:"not null;index:ix_volunteer_activities_user_status,priority:1" json:"user_id"`
	OrganizationID     *snowflake.ID   `gorm:"index" json:"organization_id,omitempty"`
	Title              string          `gorm:"type:text;not null" json:"title"`
	Description        string          `gorm:"type:text;not null;default:''" json:"description"`
	Category           Category        `gorm:"type:varchar(32);not null" json:"category"`
	ActivityDate       datatypes.Date  `gorm:"not null" json:"activity_date"`
	StartTime          *string         `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime            *string         `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	Hours              decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"hours"`
	LocationName       *string         `gorm:"type:text" json:"location_name,omitempty"`
	Latitude           *float64        `json:"latitude,omitempty"`
	Longitude          *float64        `json:"longitude,omitempty"`
	Notes              string          `gorm:"type:text;not null;default:''" json:"notes"`
	VerificationStatus Status          `gorm:"type:varchar(16);not null;default:'pending';index:ix_volunteer_activities_user_status,priority:2" json:"verification_status"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`
}

func (Activity) TableName() string {
	return "volunteer_activities"
}

// ActivityView joins the display names used by listings.
type ActivityView struct {
	Activity
	UserName         string  `gorm:"column:user_name"`
	OrganizationName *string `gorm:"column:organization_name"`
}

type ListFilter struct {
	UserID *snowflake.ID
	Status *Status
}
