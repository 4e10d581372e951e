package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range envBindings {
		t.Setenv(env, "")
	}

	c, err := load(viper.New())
	require.NoError(t, err)

	// empty values count as unset
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, "web/static", c.Server.StaticDir)
	assert.Equal(t, 5*time.Minute, c.Redis.SummaryTTL)
	assert.Equal(t, 5*time.Minute, c.Worker.Interval)
	assert.Equal(t, 120*time.Hour, c.Auth.SessionMaxAge)
	assert.True(t, c.Auth.Enabled)
	assert.False(t, c.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/delivery")
	t.Setenv("REDIS_SUMMARY_TTL", "30s")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("WORKER_INTERVAL", "1m")

	c, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9000", c.Server.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "postgres://localhost/delivery", c.Database.URL)
	assert.Equal(t, 30*time.Second, c.Redis.SummaryTTL)
	assert.False(t, c.Auth.Enabled)
	assert.Equal(t, time.Minute, c.Worker.Interval)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("WORKER_INTERVAL", "0s")

	_, err := load(viper.New())
	require.Error(t, err)
}
