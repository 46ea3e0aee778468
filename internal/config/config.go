package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the trivia service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	RedisURL     string
	SessionTTL   time.Duration
	CookieSecure bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file. RedisURL is optional: when empty the service falls back to the
// in-memory session store.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRIVIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Gridiron Trivia")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cookie_secure", false)

	ttlString := v.GetString("session.ttl")
	if ttlString == "" {
		ttlString = "30m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive")
	}

	return Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		RedisURL:     v.GetString("redis.url"),
		SessionTTL:   ttl,
		CookieSecure: v.GetBool("session.cookie_secure"),
	}, nil
}
