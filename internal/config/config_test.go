package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0 0 * * *", cfg.Reset.CronSchedule)
	assert.Equal(t, "Asia/Jakarta", cfg.Reset.Timezone)
	assert.Equal(t, 12, cfg.Session.TTLHours)
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "banyak")

	_, err := Load("")
	assert.Error(t, err)
}
