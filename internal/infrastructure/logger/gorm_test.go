package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info, 0)
	changed := gl.LogMode(gormlogger.Warn).(*GormLogger)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, changed.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("error is logged", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, 0)

		gl.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), errors.New("syntax error"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Info, 0)

		gl.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)

		assert.Zero(t, recorded.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT pg_sleep(1)", 1), nil)

		assert.Equal(t, 1, recorded.FilterMessage("Slow SQL").Len())
	})

	t.Run("queries at info level are debug logs", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Info, 0)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

		gl.Trace(ctx, time.Now(), sqlFn("SELECT * FROM timesheets", 3), nil)

		entries := recorded.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Silent, 0)

		gl.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), errors.New("boom"))

		assert.Zero(t, recorded.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
