package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                  string   `mapstructure:"PORT"`
	Env                   string   `mapstructure:"ENV"`
	DatabaseURL           string   `mapstructure:"DATABASE_URL"`
	DBMaxConns            int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns            int32    `mapstructure:"DB_MIN_CONNS"`
	GeminiAPIKey          string   `mapstructure:"GEMINI_API_KEY"`
	GeminiModel           string   `mapstructure:"GEMINI_MODEL"`
	ExtractTimeoutSeconds int      `mapstructure:"EXTRACT_TIMEOUT_SECONDS"`
	CORSOrigins           []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("GEMINI_MODEL", "gemini-pro")
	v.SetDefault("EXTRACT_TIMEOUT_SECONDS", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("EXTRACT_TIMEOUT_SECONDS")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.ExtractTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("EXTRACT_TIMEOUT_SECONDS must be positive")
	}

	// A missing GEMINI_API_KEY is deliberately not an error here;
	// extraction requests fail with a transport error until it is set.
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
