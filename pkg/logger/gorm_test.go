package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func captureContext(level slog.Level) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return WithContext(context.Background(), l), &buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLoggerTrace(t *testing.T) {
	gl := NewGormLogger(gormlogger.Info, 100*time.Millisecond)

	t.Run("errors are logged", func(t *testing.T) {
		ctx, buf := captureContext(slog.LevelDebug)
		gl.Trace(ctx, time.Now(), sqlFn("SELECT 1"), errors.New("connection reset"))
		assert.Contains(t, buf.String(), "SQL error")
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("not found is not an error", func(t *testing.T) {
		ctx, buf := captureContext(slog.LevelDebug)
		gl.Trace(ctx, time.Now(), sqlFn("SELECT * FROM budget_targets"), gorm.ErrRecordNotFound)
		assert.NotContains(t, buf.String(), "SQL error")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("slow queries warn", func(t *testing.T) {
		ctx, buf := captureContext(slog.LevelDebug)
		gl.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT * FROM receipts"), nil)
		assert.Contains(t, buf.String(), "Slow SQL")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		ctx, buf := captureContext(slog.LevelDebug)
		gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), sqlFn("SELECT 1"), errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

func TestTruncateSQL(t *testing.T) {
	long := "INSERT INTO receipts VALUES ('" + strings.Repeat("x", 3*maxSQLLength) + "')"
	out := truncateSQL(long)
	assert.True(t, strings.HasSuffix(out, "...(truncated)"))
	assert.Len(t, out, maxSQLLength+len("...(truncated)"))
	assert.Equal(t, "SELECT 1", truncateSQL("  SELECT 1 "))
}
