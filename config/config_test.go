package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "blog-api", cfg.MongoDB)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 72*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 20, cfg.DefaultLimit)
	require.Equal(t, 60, cfg.RateLimit)
	require.Equal(t, time.Minute, cfg.RateWindow)
	require.Empty(t, cfg.AdminEmails)
	require.False(t, cfg.Production())
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	_, err := Load()
	require.ErrorContains(t, err, "MONGO_URI")
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "JWT_ACCESS_SECRET")
}

func TestLoadRejectsEqualSecrets(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_ACCESS_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	_, err := Load()
	require.ErrorContains(t, err, "must differ")
}

func TestLoadParsesOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "24h")
	t.Setenv("DEFAULT_RES_LIMIT", "50")
	t.Setenv("RATE_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Production())
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 50, cfg.DefaultLimit)
	require.Equal(t, 10, cfg.RateLimit)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "soon")

	_, err := Load()
	require.ErrorContains(t, err, "ACCESS_TOKEN_EXPIRY")
}

func TestAdminAllowList(t *testing.T) {
	setRequired(t)
	t.Setenv("WHITELIST_ADMIN_MAILS", "Boss@X.com, second@x.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"boss@x.com", "second@x.com"}, cfg.AdminEmails)

	require.True(t, cfg.AdminAllowed("boss@x.com"))
	require.True(t, cfg.AdminAllowed("  BOSS@x.com "))
	require.True(t, cfg.AdminAllowed("second@x.com"))
	require.False(t, cfg.AdminAllowed("stranger@x.com"))
}
