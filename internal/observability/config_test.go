package observability

import (
	"testing"
	"time"

	"github.com/smallbiznis/impactmap/internal/config"
	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestLoadConfigFromAppConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:           " impactmap-api ",
		AppVersion:        "1.2.0",
		Environment:       "production",
		LogLevel:          "info",
		OtelSamplingRatio: 3,
		DBLogLevel:        "error",
		DBSlowQueryMS:     750,
	})

	assert.Equal(t, "impactmap-api", cfg.ServiceName)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.Equal(t, gormlogger.Error, cfg.DBLogLevel)
	assert.Equal(t, 750*time.Millisecond, cfg.DBSlowQueryTimeout)
	assert.False(t, cfg.Debug())

	gormCfg := provideGormLoggerConfig(cfg)
	assert.Equal(t, gormlogger.Error, gormCfg.Level)
	assert.Equal(t, 750*time.Millisecond, gormCfg.SlowThreshold)
	assert.True(t, gormCfg.IgnoreRecordNotFound)
}

func TestDebugInDevelopment(t *testing.T) {
	assert.True(t, LoadConfig(config.Config{Environment: "development"}).Debug())
	assert.True(t, LoadConfig(config.Config{Environment: "production", LogLevel: "debug"}).Debug())
}
