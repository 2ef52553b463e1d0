package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.volunteerSvc.Create(c.Request.Context(), volunteerdomain.CreateRequest{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	scopeUser(c, resp.ID)

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	resp, err := s.volunteerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserProfile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	scopeUser(c, id)
	resp, err := s.volunteerSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// RecomputeUser re-runs the totals pipeline for a volunteer.
func (s *Server) RecomputeUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	scopeUser(c, id)
	resp, err := s.verificationSvc.Recompute(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
