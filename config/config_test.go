package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MEDIA_URL", "/uploads")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db:6379", cfg.RedisAddr)
	assert.Equal(t, "/uploads/", cfg.MediaURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "0 3 * * *", cfg.MediaCleanupSchedule)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PDF_FONT_PATH", "/fonts/font.ttf")
	t.Setenv("MEDIA_CLEANUP_SCHEDULE", "@hourly")
	t.Setenv("JWT_SECRET", "secret")

	cfg := LoadConfig()

	assert.Equal(t, "/fonts/font.ttf", cfg.PDFFontPath)
	assert.Equal(t, "@hourly", cfg.MediaCleanupSchedule)
	assert.Equal(t, "secret", cfg.JWTSecret)
}
