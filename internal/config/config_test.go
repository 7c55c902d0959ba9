package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("ADMIN_ID", "12345")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "key")
	t.Setenv("SESSIONS_SQLITE_DSN", "")
	t.Setenv("LOG_FILE", "")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, int64(12345), cfg.AdminID)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "key", cfg.SupabaseKey)
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "ADMIN_ID", "SUPABASE_URL", "SUPABASE_KEY"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadMalformedAdminID(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}
