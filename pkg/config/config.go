package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Redis   RedisConfig
	Session SessionConfig
	NATS    NATSConfig
	Devstub DevstubConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points the front end at the remote hotel booking service.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	URL     string
	DB      int
	Enabled bool
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type NATSConfig struct {
	URL     string
	Enabled bool
}

// DevstubConfig seeds the development backend stub.
type DevstubConfig struct {
	Port         string
	JWTSecret    string
	SeedUser     string
	SeedPassword string
	TokenTTL     time.Duration
}

func Load() *Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		API: APIConfig{
			BaseURL: getEnv("HOTEL_API_URL", "http://localhost:8081"),
			Timeout: getDuration("HOTEL_API_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			DB:      getInt("REDIS_DB", 0),
			Enabled: getBool("REDIS_ENABLED", false),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "hotel_session"),
			TTL:        getDuration("SESSION_TTL", 24*time.Hour),
			Secure:     getBool("SESSION_SECURE", false),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Enabled: getBool("NATS_ENABLED", false),
		},
		Devstub: DevstubConfig{
			Port:         getEnv("DEVSTUB_PORT", "8081"),
			JWTSecret:    getEnv("DEVSTUB_JWT_SECRET", "dev-only-secret-change-in-prod"),
			SeedUser:     getEnv("DEVSTUB_USER", "guest"),
			SeedPassword: getEnv("DEVSTUB_PASSWORD", "guest"),
			TokenTTL:     getDuration("DEVSTUB_TOKEN_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
