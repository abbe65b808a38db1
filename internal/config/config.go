package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabaseURL                   string `mapstructure:"DATABASE_URL"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	AdminSecret                   string `mapstructure:"ADMIN_SECRET"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	TrialWindowDays               int    `mapstructure:"TRIAL_WINDOW_DAYS"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "kitebot.db")
	viper.SetDefault("TRIAL_WINDOW_DAYS", 30)

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("ADMIN_SECRET")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("TRIAL_WINDOW_DAYS")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
