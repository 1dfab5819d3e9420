package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database. A postgres DSN (postgres:// or key=value form) selects the
	// postgres driver; anything else is treated as a local sqlite file path.
	DatabaseURL string

	// JWT
	JWTSecret string

	// Uploads
	UploadDir      string
	StorageBackend string // "local" or "s3"

	// AWS S3 / MinIO (only used when StorageBackend is "s3")
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string

	// Redis (optional, enables rate limiting when set)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", "minigram.db"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		UploadDir:      getEnv("UPLOAD_DIR", "static/upload"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "minigram-media"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
