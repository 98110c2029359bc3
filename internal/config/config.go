package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string // Application port
	StoreDriver     string // Persistence driver: mysql, redis or memory
	DBUser          string // Database user
	DBPassword      string // Database password
	DBHost          string // Database host
	DBPort          string // Database port
	DBName          string // Database name
	JWTSecret       string // JWT secret key
	RedisAddr       string // Redis server address
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	AutoLockSeconds int    // Inactivity window before auto-logout
	IsProd          bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	autoLock, err := strconv.Atoi(os.Getenv("AUTO_LOCK_SECONDS"))
	if err != nil || autoLock <= 0 {
		autoLock = 120
	}
	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		StoreDriver:     getEnv("STORE_DRIVER", "mysql"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		AutoLockSeconds: autoLock,
		IsProd:          os.Getenv("IS_PROD") == "true",
	}
}

// DSN assembles the MySQL Data Source Name.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
