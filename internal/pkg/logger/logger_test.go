package logger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	t.Run("should parse known levels case-insensitively", func(t *testing.T) {
		assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
		assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
		assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	})

	t.Run("should fall back to info", func(t *testing.T) {
		assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
		assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	})
}

func TestNew(t *testing.T) {
	t.Run("should build a json logger writing to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")

		log, err := New(Config{Level: "debug", Format: "json", Output: path})

		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
		log.Info("hello")
		assert.NoError(t, log.Sync())
		assert.FileExists(t, path)
	})

	t.Run("should fail when the output cannot be opened", func(t *testing.T) {
		_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})

		assert.Error(t, err)
	})
}

func TestGormLogger(t *testing.T) {
	newObserved := func(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		return NewGormLogger(zap.New(core), level), logs
	}
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("should log sql errors", func(t *testing.T) {
		gl, logs := newObserved(gormlogger.Warn)

		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "gorm", entry.LoggerName)
		assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
	})

	t.Run("should not log record not found", func(t *testing.T) {
		gl, logs := newObserved(gormlogger.Info)

		gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("should flag slow queries", func(t *testing.T) {
		gl, logs := newObserved(gormlogger.Warn)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("should stay quiet when silent", func(t *testing.T) {
		gl, logs := newObserved(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		gl.Error(context.Background(), "boom")

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("should keep the original level when switching mode", func(t *testing.T) {
		gl, _ := newObserved(gormlogger.Info)

		switched := gl.LogMode(gormlogger.Error).(*GormLogger)

		assert.Equal(t, gormlogger.Info, gl.level)
		assert.Equal(t, gormlogger.Error, switched.level)
	})

	t.Run("should map config levels", func(t *testing.T) {
		assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
		assert.Equal(t, gormlogger.Info, GormLevel("debug"))
		assert.Equal(t, gormlogger.Warn, GormLevel("unknown"))
	})
}
