package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	verificationdomain "github.com/smallbiznis/impactmap/internal/verification/domain"
)

type submitActivityRequest struct {
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

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SubmitActivity(c *gin.Context) {
	var req submitActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	scopeUser(c, req.UserID)

	resp, err := s.activitySvc.Submit(c.Request.Context(), activitydomain.SubmitRequest{
		UserID:         strings.TrimSpace(req.UserID),
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		ActivityDate:   strings.TrimSpace(req.ActivityDate),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Hours:          req.Hours,
		LocationName:   req.LocationName,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Notes:          req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListActivities(c *gin.Context) {
	var query struct {
		UserID string `form:"user_id"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	scopeUser(c, query.UserID)

	resp, err := s.activitySvc.List(c.Request.Context(), activitydomain.ListRequest{
		UserID: strings.TrimSpace(query.UserID),
		Status: strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetActivityByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.activitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetVerificationStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		AbortWithError(c, newValidationError("status", "required", "status is required"))
		return
	}

	resp, err := s.verificationSvc.SetStatus(c.Request.Context(), verificationdomain.SetStatusRequest{
		ActivityID: strings.TrimSpace(c.Param("id")),
		Status:     req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	scopeUser(c, resp.Activity.UserID)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
