package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLThenEnvThenDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: \"9000\"\nJWT_SECRET: from-yaml\nDB_DRIVER: sqlite\n"), 0644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")
	LoadConfig()

	assert.Equal(t, "9000", GetConfig("APP_PORT"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "uploads", GetConfig("UPLOAD_DIR"))
	assert.Equal(t, "", GetConfig("NOT_A_KEY"))
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	LoadConfig()

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "local", GetConfig("STORAGE_DRIVER"))
	assert.Equal(t, 10, GetConfigInt("BODY_LIMIT_MB", 1))
}

func TestGetConfigInt(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RATE_LIMIT_MAX", "oops")
	LoadConfig()

	assert.Equal(t, 7, GetConfigInt("RATE_LIMIT_MAX", 7))
	assert.Equal(t, 3, GetConfigInt("AWS_S3_BUCKET", 3))
}
