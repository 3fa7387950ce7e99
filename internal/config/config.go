package config

import (
	"fmt"
	"os"
)

type Config struct {
	DiscordBotToken string
	DiscordGuildID  string
	DatabasePath    string
	HealthAddr      string
}

func Load() (*Config, error) {
	botToken := os.Getenv("DISCORD_BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("bot token is not set")
	}

	return &Config{
		DiscordBotToken: botToken,
		// Empty guild ID registers the slash commands globally.
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),
		DatabasePath:   getEnv("DATABASE_PATH", "finance.db"),
		HealthAddr:     getEnv("HEALTH_ADDR", ":8080"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
