package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Port        string `mapstructure:"PORT"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleCalendarID   string `mapstructure:"GOOGLE_CALENDAR_ID"`
	RedirectURI        string `mapstructure:"REDIRECT_URI"`
	TokenFile          string `mapstructure:"TOKEN_FILE"`

	SlotDurationMinutes   int `mapstructure:"SLOT_DURATION_MINUTES"`
	BusinessStartHour     int `mapstructure:"BUSINESS_START_HOUR"`
	BusinessEndHour       int `mapstructure:"BUSINESS_END_HOUR"`
	BusinessUTCOffsetHour int `mapstructure:"BUSINESS_UTC_OFFSET_HOURS"`
	LookaheadDays         int `mapstructure:"LOOKAHEAD_DAYS"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	SendgridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	FromEmail      string `mapstructure:"SENDGRID_FROM_EMAIL"`
	FromName       string `mapstructure:"SENDGRID_FROM_NAME"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Environment    string `mapstructure:"ENVIRONMENT"`
}

var envs = []string{
	"DATABASE_URL", "PORT",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_CALENDAR_ID",
	"REDIRECT_URI", "TOKEN_FILE",
	"SLOT_DURATION_MINUTES", "BUSINESS_START_HOUR", "BUSINESS_END_HOUR",
	"BUSINESS_UTC_OFFSET_HOURS", "LOOKAHEAD_DAYS",
	"JWT_SECRET", "SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL",
	"SENDGRID_FROM_NAME", "ALLOWED_ORIGINS", "ENVIRONMENT",
}

func LoadConfig() (Config, error) {
	var config Config
	viper.AddConfigPath("./")
	viper.SetConfigFile(".env")
	viper.ReadInConfig()
	for _, env := range envs {
		if err := viper.BindEnv(env); err != nil {
			return config, err
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("TOKEN_FILE", "token.json")
	viper.SetDefault("REDIRECT_URI", "http://localhost:8080/auth/google/callback")
	viper.SetDefault("SLOT_DURATION_MINUTES", 60)
	viper.SetDefault("BUSINESS_START_HOUR", 9)
	viper.SetDefault("BUSINESS_END_HOUR", 17)
	viper.SetDefault("BUSINESS_UTC_OFFSET_HOURS", 2)
	viper.SetDefault("LOOKAHEAD_DAYS", 7)
	viper.SetDefault("ENVIRONMENT", "development")

	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config.GoogleClientID == "" || config.GoogleClientSecret == "" {
		return config, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	if config.GoogleCalendarID == "" {
		return config, fmt.Errorf("GOOGLE_CALENDAR_ID must be set")
	}
	if config.SlotDurationMinutes <= 0 {
		return config, fmt.Errorf("SLOT_DURATION_MINUTES must be positive")
	}
	if config.LookaheadDays <= 0 {
		return config, fmt.Errorf("LOOKAHEAD_DAYS must be positive")
	}

	// The grid arithmetic works in UTC hours of a single day, so the
	// configured business window must stay inside one after the offset is
	// applied.
	startUTC := config.BusinessStartHour - config.BusinessUTCOffsetHour
	endUTC := config.BusinessEndHour - config.BusinessUTCOffsetHour
	if startUTC < 0 || endUTC > 24 {
		return config, fmt.Errorf(
			"business hours %02d:00-%02d:00 with UTC offset %+d leave the UTC day (%d-%d UTC)",
			config.BusinessStartHour, config.BusinessEndHour, config.BusinessUTCOffsetHour, startUTC, endUTC)
	}
	if startUTC >= endUTC {
		return config, fmt.Errorf("BUSINESS_START_HOUR must be before BUSINESS_END_HOUR")
	}
	return config, nil
}
