package domain

import (
	"context"
	"errors"
	"io"
	"time"

	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
)

const IssueDateLayout = "2006-01-02"

type Totals struct {
	VerifiedHours         string `json:"verified_hours"`
	VerifiedActivityCount int64  `json:"verified_activity_count"`
	ExperiencePoints      int64  `json:"experience_points"`
	Level                 int    `json:"level"`
}

// CertificateData is the flattened view printed on a certificate.
type CertificateData struct {
	Name            string `json:"name"`
	TotalHours      string `json:"totalHours"`
	TotalActivities int64  `json:"totalActivities"`
	Level           int    `json:"level"`
	IssueDate       string `json:"issueDate"`
}

// Snapshot is a point-in-time view of a volunteer read in one transaction.
type Snapshot struct {
	User               volunteerdomain.Response  `json:"user"`
	VerifiedActivities []activitydomain.Response `json:"activities"`
	Totals             Totals                    `json:"totals"`
	IssueDate          time.Time                 `json:"issue_date"`
	CertificateData    CertificateData           `json:"certificateData"`
}

type Service interface {
	Build(ctx context.Context, userID string) (Snapshot, error)
	RenderPDF(ctx context.Context, userID string) (io.Reader, Snapshot, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrNotFound    = errors.New("not_found")
)
