package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

func (s *Server) GetCertificate(c *gin.Context) {
	scopeUser(c, c.Param("userId"))
	snapshot, err := s.certificateSvc.Build(c.Request.Context(), strings.TrimSpace(c.Param("userId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

func (s *Server) GetCertificatePDF(c *gin.Context) {
	scopeUser(c, c.Param("userId"))
	reader, snapshot, err := s.certificateSvc.RenderPDF(c.Request.Context(), strings.TrimSpace(c.Param("userId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("certificate-%s-%s.pdf", slug.Make(snapshot.User.Name), snapshot.CertificateData.IssueDate)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	})
}
