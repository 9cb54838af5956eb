package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Gemini   GeminiConfig
	Geocoder GeocoderConfig
	Observer ObserverConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
	TextureURL     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// DSN overrides the individual fields when set.
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	// RatePerSecond is the outbound request budget; public Nominatim allows 1.
	RatePerSecond float64
}

// ObserverConfig is the location used when a request does not carry one.
type ObserverConfig struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	WarmCron  string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			TextureURL:     getEnv("MOON_TEXTURE_URL", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "moonlog"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("SNAPSHOT_CACHE_TTL", 36*time.Hour),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 20*time.Second),
		},
		Geocoder: GeocoderConfig{
			BaseURL:       getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:     getEnv("GEOCODER_USER_AGENT", "moonlog-backend/1.0"),
			RatePerSecond: getEnvAsFloat("GEOCODER_RATE", 1),
		},
		Observer: ObserverConfig{
			Latitude:  getEnvAsFloat("OBSERVER_LAT", 51.4779),
			Longitude: getEnvAsFloat("OBSERVER_LNG", -0.0015),
			Timezone:  getEnv("OBSERVER_TZ", "UTC"),
			WarmCron:  getEnv("SNAPSHOT_WARM_CRON", "0 5 0 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST or DB_DSN is required")
	}

	if c.Observer.Latitude < -90 || c.Observer.Latitude > 90 {
		return fmt.Errorf("OBSERVER_LAT must be within [-90, 90]")
	}
	if c.Observer.Longitude < -180 || c.Observer.Longitude > 180 {
		return fmt.Errorf("OBSERVER_LNG must be within [-180, 180]")
	}
	if _, err := time.LoadLocation(c.Observer.Timezone); err != nil {
		return fmt.Errorf("OBSERVER_TZ: %w", err)
	}

	if c.Geocoder.RatePerSecond <= 0 {
		return fmt.Errorf("GEOCODER_RATE must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
