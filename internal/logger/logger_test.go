package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Level(t *testing.T) {
	log, err := NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "json"},
		&config.AppConfig{Name: "inquiry-api", Environment: "test"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := NewLogger(
		&config.LoggingConfig{Level: "loud"},
		&config.AppConfig{Environment: "development"},
	)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithInquiry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	id := uuid.New()

	WithRequest(WithInquiry(zap.New(core), id), "GET", "/api/v1/inquiries", "req-1").Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, id.String(), fields["inquiry_id"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	LogRequest(log, Request{ID: "a", Method: "GET", Path: "/health", Status: 200})
	LogRequest(log, Request{ID: "b", Method: "GET", Path: "/api/v1/inquiries/x", Status: 404})
	LogRequest(log, Request{ID: "c", Method: "POST", Path: "/api/v1/inquiries", Status: 503, AdminID: "admin-001"})

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	assert.NotContains(t, entries[0].ContextMap(), "admin_id")
	fields := entries[2].ContextMap()
	assert.Equal(t, "c", fields["request_id"])
	assert.Equal(t, int64(503), fields["status_code"])
	assert.Equal(t, "admin-001", fields["admin_id"])
}

func TestLogRequest_SkipsDisabledLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	LogRequest(zap.New(core), Request{Method: "GET", Path: "/health", Status: 200})
	assert.Equal(t, 0, logs.Len())
}

func TestWithDispatch_MasksRecipient(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	id := uuid.New()

	WithDispatch(zap.New(core), id, "confirmation").Info("sent", Recipient("jane@acme.example"))

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, id.String(), fields["inquiry_id"])
	assert.Equal(t, "confirmation", fields["dispatch"])
	assert.Equal(t, "j***@acme.example", fields["recipient"])
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@b.co", MaskEmail("alice@b.co"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail("@b.co"))
}
