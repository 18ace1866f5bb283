package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Environment string
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	// Firebase Config
	FirebaseCredentials string

	// Scheduler / delivery settings
	SchedulerPollInterval time.Duration
	SchedulerBatchSize    int
	DispatchWorkerCount   int
	PushTimeout           time.Duration

	// Retention settings
	CleanupInterval time.Duration
	RetentionDays   int

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "mongodb://localhost:27017/backoffice"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", "your-super-secret-jwt-key"),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		SchedulerPollInterval: getEnvAsDuration("SCHEDULER_POLL_INTERVAL_SECONDS", 15*time.Second),
		SchedulerBatchSize:    getEnvAsInt("SCHEDULER_BATCH_SIZE", 50),
		DispatchWorkerCount:   getEnvAsInt("DISPATCH_WORKER_COUNT", 8),
		PushTimeout:           getEnvAsDuration("PUSH_TIMEOUT_SECONDS", 10*time.Second),

		CleanupInterval: getEnvAsDuration("CLEANUP_INTERVAL_SECONDS", 3600*time.Second),
		RetentionDays:   getEnvAsInt("NOTIFICATION_RETENTION_DAYS", 90),

		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW_SECONDS", time.Minute),
	}
}

func InitRedis(cfg *Config) *redis.Client {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		// Fallback to default config
		opt = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	return redis.NewClient(opt)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
