package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Gym backend.
	BackendURL            string `mapstructure:"BACKEND_URL"`
	BackendToken          string `mapstructure:"BACKEND_TOKEN"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`

	// Redis configuration for the shared client-record cache.
	RedisAddr                string `mapstructure:"REDIS_ADDR"`
	RedisPassword            string `mapstructure:"REDIS_PASSWORD"`
	RedisDirectoryDB         int    `mapstructure:"REDIS_DIRECTORY_DB"`
	DirectoryRedisEnabled    bool   `mapstructure:"DIRECTORY_REDIS_ENABLED"`
	DirectoryCacheTTLMinutes int    `mapstructure:"DIRECTORY_CACHE_TTL_MINUTES"`

	// Mongo, used by the development backend only.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	DevBackendPort string `mapstructure:"DEV_BACKEND_PORT"`
	DevBackendSeed bool   `mapstructure:"DEV_BACKEND_SEED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("BACKEND_URL", "http://localhost:3000")
	viper.SetDefault("BACKEND_TOKEN", "")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DIRECTORY_DB", 0)
	viper.SetDefault("DIRECTORY_REDIS_ENABLED", false)
	viper.SetDefault("DIRECTORY_CACHE_TTL_MINUTES", 60)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "gymdesk")
	viper.SetDefault("DEV_BACKEND_PORT", "3000")
	viper.SetDefault("DEV_BACKEND_SEED", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BackendTimeout is the per-request timeout for calls to the gym backend.
func (c Config) BackendTimeout() time.Duration {
	if c.BackendTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

// DirectoryCacheTTL is how long a client record lives in Redis.
func (c Config) DirectoryCacheTTL() time.Duration {
	if c.DirectoryCacheTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.DirectoryCacheTTLMinutes) * time.Minute
}
