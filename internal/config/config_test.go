package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("HEALTH_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.DiscordBotToken)
	assert.Equal(t, "finance.db", cfg.DatabasePath)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Empty(t, cfg.DiscordGuildID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "42")
	t.Setenv("DATABASE_PATH", "/tmp/bot.db")
	t.Setenv("HEALTH_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.DiscordGuildID)
	assert.Equal(t, "/tmp/bot.db", cfg.DatabasePath)
	assert.Equal(t, ":9999", cfg.HealthAddr)
}
