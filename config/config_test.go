package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "owner", cfg.OrderStatusPolicy)
	assert.False(t, cfg.RestockOnCancel)
	assert.Equal(t, 10, cfg.MaxPriority)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ORDER_STATUS_POLICY", "any")
	t.Setenv("RESTOCK_ON_CANCEL", "true")
	t.Setenv("DB_NAME", "shop_test")

	cfg := LoadConfig()
	assert.Equal(t, "any", cfg.OrderStatusPolicy)
	assert.True(t, cfg.RestockOnCancel)
	assert.Equal(t, "shop_test", cfg.DBName)
}

func TestGetEnvFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-secret\n"), 0600))

	t.Setenv("JWT_SECRET_FILE", secretFile)
	t.Setenv("JWT_SECRET", "env-secret")

	// 文件优先于环境变量，且去掉首尾空白
	cfg := LoadConfig()
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}
