package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"

	AuthLocal    = "local"
	AuthFirebase = "firebase"
)

type Config struct {
	ServerPort  string
	Environment string

	JWTSecret    string
	JWTExpiry    int64
	AuthProvider string

	StorageBackend string
	StoragePrefix  string
	StorageBucket  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	PollInterval     time.Duration
	RateLimitEnabled bool
	SeedDemoAccount  bool
}

func Load() (*Config, error) {
	godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: environment,

		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:    getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		AuthProvider: getEnv("AUTH_PROVIDER", AuthLocal),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendMemory),
		StoragePrefix:  getEnv("STORAGE_PREFIX", ""),
		StorageBucket:  getEnv("STORAGE_BUCKET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       int(getEnvAsInt64("REDIS_DB", 0)),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		PollInterval:     getEnvAsDuration("POLL_INTERVAL", time.Second),
		RateLimitEnabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),
		SeedDemoAccount:  getEnvAsBool("SEED_DEMO_ACCOUNT", environment == "development"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID must be set for the firestore backend")
		}
	case BackendGCS:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET must be set for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.AuthProvider {
	case AuthLocal:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set")
		}
	case AuthFirebase:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID must be set for firebase auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	return nil
}

// NeedsGoogleCredentials reports whether any configured component talks to GCP.
func (c *Config) NeedsGoogleCredentials() bool {
	return c.AuthProvider == AuthFirebase ||
		c.StorageBackend == BackendFirestore ||
		c.StorageBackend == BackendGCS
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err == nil {
			return duration
		}
	}
	return defaultValue
}
