package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Equal(t, 3*24*time.Hour, cfg.UpcomingWindow)
	assert.Equal(t, 24*time.Hour, cfg.NotifyThrottle)
	assert.Equal(t, 24*time.Hour, cfg.ReminderCheckInterval)
	assert.True(t, cfg.ReminderCheckEnabled)
	assert.Empty(t, cfg.MQTTBrokerURL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "carservice.toml")
	content := `
[server]
port = "9090"

[database]
driver = "sqlite"
url = "file:carservice.db"

[mail]
port = 587
frontend_url = "https://app.example.com"

[reminders]
enabled = false
check_interval = "6h"
upcoming_window = "48h"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("REMINDER_NOTIFY_THROTTLE", "12h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port, "environment wins over file")
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:carservice.db", cfg.DatabaseURL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.False(t, cfg.ReminderCheckEnabled)
	assert.Equal(t, 6*time.Hour, cfg.ReminderCheckInterval)
	assert.Equal(t, 48*time.Hour, cfg.UpcomingWindow)
	assert.Equal(t, 12*time.Hour, cfg.NotifyThrottle)
}

func TestLoad_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("SMTP_PORT", "not-a-port")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidFileDuration(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reminders]\ncheck_interval = \"daily\"\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "reminders.check_interval")
}

func TestLoad_NonPositiveDurations(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"zero check interval", "REMINDER_CHECK_INTERVAL", "0s"},
		{"negative check interval", "REMINDER_CHECK_INTERVAL", "-1h"},
		{"zero throttle", "REMINDER_NOTIFY_THROTTLE", "0s"},
		{"zero window", "REMINDER_UPCOMING_WINDOW", "0s"},
		{"zero jwt ttl", "JWT_TTL", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.env, tt.val)

			_, err := Load("")
			assert.ErrorContains(t, err, "must be positive")
		})
	}

	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "zero.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reminders]\ncheck_interval = \"0s\"\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "reminder check interval")
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}
