package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	certificatedomain "github.com/smallbiznis/impactmap/internal/certificate/domain"
	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/smallbiznis/impactmap/internal/observability"
	obscontext "github.com/smallbiznis/impactmap/internal/observability/context"
	obsmiddleware "github.com/smallbiznis/impactmap/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	obstracing "github.com/smallbiznis/impactmap/internal/observability/tracing"
	organizationdomain "github.com/smallbiznis/impactmap/internal/organization/domain"
	statsdomain "github.com/smallbiznis/impactmap/internal/stats/domain"
	verificationdomain "github.com/smallbiznis/impactmap/internal/verification/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware(obstracing.MiddlewareConfig{ServiceName: obsCfg.ServiceName}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	volunteerSvc    volunteerdomain.Service
	activitySvc     activitydomain.Service
	verificationSvc verificationdomain.Service
	organizationSvc organizationdomain.Service
	badgeSvc        badgedomain.Service
	statsSvc        statsdomain.Service
	certificateSvc  certificatedomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	VolunteerSvc    volunteerdomain.Service
	ActivitySvc     activitydomain.Service
	VerificationSvc verificationdomain.Service
	OrganizationSvc organizationdomain.Service
	BadgeSvc        badgedomain.Service
	StatsSvc        statsdomain.Service
	CertificateSvc  certificatedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		volunteerSvc:    p.VolunteerSvc,
		activitySvc:     p.ActivitySvc,
		verificationSvc: p.VerificationSvc,
		organizationSvc: p.OrganizationSvc,
		badgeSvc:        p.BadgeSvc,
		statsSvc:        p.StatsSvc,
		certificateSvc:  p.CertificateSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Volunteers --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUserProfile)
	api.POST("/users/:id/recompute", s.RecomputeUser)

	// -------- Activities --------
	api.GET("/activities", s.ListActivities)
	api.POST("/activities", s.SubmitActivity)
	api.GET("/activities/:id", s.GetActivityByID)
	api.PUT("/activities/:id/verify", s.SetVerificationStatus)

	// -------- Organizations --------
	api.GET("/organizations", s.ListOrganizations)
	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations/:id", s.GetOrganizationByID)

	api.GET("/badges", s.ListBadges)
	api.GET("/stats", s.GetGlobalStats)
	api.GET("/map-data", s.GetMapData)

	// -------- Certificates --------
	api.GET("/certificate/:userId", s.GetCertificate)
	api.GET("/certificate/:userId/pdf", s.GetCertificatePDF)
}

// scopeUser tags the request with the volunteer it acts on so request logs
// and downstream service logs carry the id.
func scopeUser(c *gin.Context, userID string) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return
	}
	c.Set("user_id", userID)
	c.Request = c.Request.WithContext(obscontext.WithActorID(c.Request.Context(), userID))
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
