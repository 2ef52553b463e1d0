package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures query logging for the volunteer store.
type GormLoggerConfig struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
	// IgnoreRecordNotFound keeps ErrRecordNotFound out of the error log.
	IgnoreRecordNotFound bool
}

func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// ParseGormLevel maps silent, error, warn and info. Anything else is warn.
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent", "off":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// GormLogger writes gorm output through zap with the request's correlation
// fields and the table each statement touches.
type GormLogger struct {
	cfg  GormLoggerConfig
	base *zap.Logger
}

func NewGormLogger(cfg GormLoggerConfig, base *zap.Logger) *GormLogger {
	if base == nil {
		base = zap.L()
	}
	return &GormLogger{cfg: cfg, base: base.Named("db")}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Info {
		l.message(ctx, zap.InfoLevel, msg, data)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Warn {
		l.message(ctx, zap.WarnLevel, msg, data)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Error {
		l.message(ctx, zap.ErrorLevel, msg, data)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)
	switch {
	case err != nil && !(notFound && l.cfg.IgnoreRecordNotFound) && l.cfg.Level >= gormlogger.Error:
		l.query(ctx, zap.ErrorLevel, "db query failed", fc, elapsed, err)
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		l.query(ctx, zap.WarnLevel, "db query slow", fc, elapsed, nil,
			zap.Int64("slow_threshold_ms", l.cfg.SlowThreshold.Milliseconds()))
	case l.cfg.Level >= gormlogger.Info:
		l.query(ctx, zap.DebugLevel, "db query", fc, elapsed, nil)
	}
}

// ParamsFilter drops bound values; they carry volunteer names and emails.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) message(ctx context.Context, level zapcore.Level, msg string, data []interface{}) {
	var fields []zap.Field
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	WithContext(ctx, l.base).Check(level, msg).Write(fields...)
}

func (l *GormLogger) query(ctx context.Context, level zapcore.Level, msg string, fc func() (string, int64), elapsed time.Duration, err error, extra ...zap.Field) {
	ce := WithContext(ctx, l.base).Check(level, msg)
	if ce == nil {
		return
	}

	sql, rows := fc()
	sql = strings.TrimSpace(sql)
	fields := []zap.Field{
		zap.String("operation", operationFromSQL(sql)),
		zap.String("table", tableFromSQL(sql)),
		zap.String("sql", sql),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(append(fields, extra...)...)
}

func operationFromSQL(sql string) string {
	for _, token := range strings.Fields(strings.ToUpper(sql)) {
		token = strings.Trim(token, "();")
		switch token {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			return token
		}
	}
	return "UNKNOWN"
}

var storeTables = []string{
	"volunteer_activities",
	"user_badges",
	"volunteers",
	"organizations",
	"badges",
}

// tableFromSQL names the first store table a statement mentions.
func tableFromSQL(sql string) string {
	lower := strings.ToLower(sql)
	best, bestAt := "", -1
	for _, table := range storeTables {
		for from := 0; ; {
			idx := strings.Index(lower[from:], table)
			if idx < 0 {
				break
			}
			idx += from
			end := idx + len(table)
			if isIdentBoundary(lower, idx-1) && isIdentBoundary(lower, end) {
				if bestAt < 0 || idx < bestAt {
					best, bestAt = table, idx
				}
				break
			}
			from = end
		}
	}
	if best == "" {
		return "other"
	}
	return best
}

func isIdentBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
