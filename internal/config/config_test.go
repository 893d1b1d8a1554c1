package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, 10, cfg.Pagination.DefaultLimit)
	require.Equal(t, 100, cfg.Pagination.MaxLimit)
	require.Equal(t, time.Hour, cfg.Cache.MaxAge)
	require.Equal(t, time.Hour, cfg.TokenTTL())
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BILEMO_AUTH_JWTSECRET", "s3cret")
	t.Setenv("BILEMO_AUTH_TOKENTTLMINUTES", "5")
	t.Setenv("BILEMO_SERVER_REQUESTTIMEOUT", "3s")
	t.Setenv("BILEMO_PAGINATION_DEFAULTLIMIT", "5")
	t.Setenv("BILEMO_PAGINATION_MAXLIMIT", "25")
	t.Setenv("BILEMO_METRICS_ENABLED", "false")
	t.Setenv("BILEMO_SERVER_CORSORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 5*time.Minute, cfg.TokenTTL())
	require.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, 5, cfg.Pagination.DefaultLimit)
	require.Equal(t, 25, cfg.Pagination.MaxLimit)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
}
