package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListBadges(c *gin.Context) {
	resp, err := s.badgeSvc.Catalog(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetGlobalStats(c *gin.Context) {
	resp, err := s.statsSvc.Global(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMapData(c *gin.Context) {
	resp, err := s.statsSvc.MapData(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
