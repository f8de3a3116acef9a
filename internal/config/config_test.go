package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretSource map[string]string

func (f fakeSecretSource) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := f[secretName]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "admin-001", cfg.Auth.AdminID)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "admin@example.com", cfg.Notifications.AdminEmail)
	assert.Equal(t, 5, cfg.RateLimit.SubmissionsPerWindow)
	assert.False(t, cfg.Notifications.SendConfirmation)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NotificationToggles(t *testing.T) {
	t.Setenv("SEND_EMAIL_NOTIFICATIONS", "true")
	t.Setenv("SEND_ADMIN_NOTIFICATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Notifications.SendConfirmation)
	assert.False(t, cfg.Notifications.SendAdminNotification)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "mongo"},
		Notifications: NotificationsConfig{
			SendAdminNotification: true,
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
	assert.Contains(t, err.Error(), "notifications.adminEmail")
	assert.Contains(t, err.Error(), `"mongo"`)
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{
		Auth:     AuthConfig{JWTSecret: "from-env"},
		Database: DatabaseConfig{Host: "localhost"},
	}

	applySecrets(context.Background(), cfg, fakeSecretSource{
		"jwt-secret":             "from-vault",
		"POSTGRES-MAIN-HOST":     "db.internal",
		"sendgrid-api-key":       "SG.key",
		"POSTGRES-MAIN-PASSWORD": "",
	})

	assert.Equal(t, "from-vault", cfg.Auth.JWTSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "SG.key", cfg.Email.SendGridAPIKey)
	assert.Empty(t, cfg.Database.Password)
}

func TestDurations(t *testing.T) {
	auth := AuthConfig{JWTExpiry: 90}
	assert.Equal(t, "1h30m0s", auth.JWTExpiryDuration().String())

	rl := RateLimitConfig{WindowSeconds: 60, SubmissionWindowSeconds: 900}
	assert.Equal(t, "1m0s", rl.WindowDuration().String())
	assert.Equal(t, "15m0s", rl.SubmissionWindowDuration().String())
}
