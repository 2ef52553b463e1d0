package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/activity"
	"github.com/smallbiznis/impactmap/internal/aggregation"
	"github.com/smallbiznis/impactmap/internal/badge"
	"github.com/smallbiznis/impactmap/internal/certificate"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/smallbiznis/impactmap/internal/lock"
	"github.com/smallbiznis/impactmap/internal/migration"
	"github.com/smallbiznis/impactmap/internal/observability"
	"github.com/smallbiznis/impactmap/internal/organization"
	"github.com/smallbiznis/impactmap/internal/providers"
	"github.com/smallbiznis/impactmap/internal/server"
	"github.com/smallbiznis/impactmap/internal/stats"
	"github.com/smallbiznis/impactmap/internal/verification"
	"github.com/smallbiznis/impactmap/internal/volunteer"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		lock.Module,
		providers.Module,

		// Functional Domains
		volunteer.Module,
		organization.Module,
		activity.Module,
		aggregation.Module,
		badge.Module,
		verification.Module,
		certificate.Module,
		stats.Module,

		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
