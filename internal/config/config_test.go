package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("THUMB_WORKERS", "4")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Thumbnail.Workers)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"UPLOAD_DIR", "UPLOAD_MAX_BYTES", "THUMB_WIDTH", "THUMB_HEIGHT", "DB_AUTO_MIGRATE", "STORAGE_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "documents", cfg.Storage.UploadDir)
	assert.Equal(t, 50*1024*1024, cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 200, cfg.Thumbnail.Width)
	assert.Equal(t, 200, cfg.Thumbnail.Height)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_PasswordFallback(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_PASS", "legacy-secret")

	assert.Equal(t, "legacy-secret", Load().Database.Password)

	t.Setenv("DB_PASSWORD", "primary-secret")
	assert.Equal(t, "primary-secret", Load().Database.Password)
}

func TestAppConfig_Location(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Jakarta"}
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
