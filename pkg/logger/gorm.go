package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength keeps receipt inserts, whose line items are inlined as JSON, readable in logs
const maxSQLLength = 2000

// GormLogger routes gorm traces through the request-scoped slog logger, so SQL lines carry
// the request id and tenant of the request that issued them
type GormLogger struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(logLevel gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{LogLevel: logLevel, SlowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Info, slog.LevelInfo, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Warn, slog.LevelWarn, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Error, slog.LevelError, msg, data)
}

func (l *GormLogger) emit(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, data []interface{}) {
	if l.LogLevel < min {
		return
	}
	FromContext(ctx).Log(ctx, level, fmt.Sprintf(msg, data...), slog.String("component", "gorm"))
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{
		slog.String("sql", truncateSQL(sql)),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	log := FromContext(ctx)

	switch {
	// missing budget targets and id lookups are expected outcomes, not failures
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormlogger.Error:
		log.Error("SQL error", append(attrs, slog.String("error", err.Error()))...)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		log.Warn("Slow SQL", append(attrs, slog.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		log.Debug("SQL", attrs...)
	}
}

func truncateSQL(sql string) string {
	sql = strings.TrimSpace(sql)
	if len(sql) <= maxSQLLength {
		return sql
	}
	return sql[:maxSQLLength] + "...(truncated)"
}
