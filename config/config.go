package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Logger   Logger
	Features Features
}

type Server struct {
	Port               string
	Environment        string
	CORSAllowedOrigins []string
}

type Database struct {
	URL string
}

type JWT struct {
	Secret   string
	TokenTTL time.Duration
}

type Logger struct {
	Development bool
	Level       string
}

type Features struct {
	ChatRequiresConnection bool
	SeedEnabled            bool
}

var requiredKeys = []string{"DATABASE_URL", "JWT_SECRET_KEY"}

// Load reads .env (if present), config/app.yaml (if present) and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("required configuration %s is not set", key)
		}
	}

	env := strings.ToLower(v.GetString("ENVIRONMENT"))
	ttl := v.GetInt("TOKEN_TTL_HOURS")
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", ttl)
	}

	return &Config{
		Server: Server{
			Port:               v.GetString("PORT"),
			Environment:        env,
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: Database{URL: v.GetString("DATABASE_URL")},
		JWT: JWT{
			Secret:   v.GetString("JWT_SECRET_KEY"),
			TokenTTL: time.Duration(ttl) * time.Hour,
		},
		Logger: Logger{
			Development: env != "production",
			Level:       v.GetString("LOG_LEVEL"),
		},
		Features: Features{
			ChatRequiresConnection: v.GetBool("CHAT_REQUIRE_CONNECTION"),
			SeedEnabled:            v.GetBool("SEED_ENABLED"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CHAT_REQUIRE_CONNECTION", false)
	v.SetDefault("SEED_ENABLED", false)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
