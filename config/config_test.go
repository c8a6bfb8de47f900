package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "test-user-id", cfg.DefaultUserID)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Minute, cfg.ImageKitTokenTTL)
	assert.False(t, cfg.AuthEnabled)
	assert.False(t, cfg.S3Enabled())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", " Postgres ")
	t.Setenv("PORT", "8081")
	t.Setenv("CLIENT_URL", "https://chat.example.com/")
	t.Setenv("S3_REGION", "us-east-1")
	t.Setenv("S3_BUCKET", "images")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "https://chat.example.com", cfg.ClientURL)
	assert.True(t, cfg.S3Enabled())
	assert.True(t, cfg.RedisEnabled())
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRequiresSecretWhenAuthEnabled(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsLongTokenTTL(t *testing.T) {
	t.Setenv("IMAGE_KIT_TOKEN_TTL", "2h")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsSubSecondWriteWindow(t *testing.T) {
	t.Setenv("CHAT_WRITE_WINDOW", "500ms")

	_, err := Parse()
	assert.Error(t, err)
}

func TestValidateWriteWindowBoundary(t *testing.T) {
	cfg := &Config{
		DBDriver:         DriverMongo,
		ImageKitTokenTTL: 30 * time.Minute,
		ChatWriteLimit:   10,
		ChatWriteWindow:  time.Second,
	}
	assert.NoError(t, cfg.Validate())

	cfg.ChatWriteWindow = 999 * time.Millisecond
	assert.Error(t, cfg.Validate())

	cfg.ChatWriteWindow = time.Minute
	cfg.ChatWriteLimit = 0
	assert.Error(t, cfg.Validate())
}
