package observability

import (
	"strings"
	"time"

	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/smallbiznis/impactmap/internal/observability/logger"
	gormlogger "gorm.io/gorm/logger"
)

// Config is the observability view of the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	DBLogLevel         gormlogger.LogLevel
	DBSlowQueryTimeout time.Duration
}

func LoadConfig(cfg config.Config) Config {
	ratio := cfg.OtelSamplingRatio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	return Config{
		ServiceName:          strings.TrimSpace(cfg.AppName),
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             cfg.LogLevel,
		LogFormat:            cfg.LogFormat,
		OtelEnabled:          cfg.OtelEnabled,
		OtelExporterEndpoint: strings.TrimSpace(cfg.OTLPEndpoint),
		OtelExporterProtocol: cfg.OTLPProtocol,
		OtelSamplingRatio:    ratio,
		DBLogLevel:           logger.ParseGormLevel(cfg.DBLogLevel),
		DBSlowQueryTimeout:   time.Duration(cfg.DBSlowQueryMS) * time.Millisecond,
	}
}

// Debug reports whether verbose logging and stack traces are wanted.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}
