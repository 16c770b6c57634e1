package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"questhunt"`
	RedisURI string `env:"REDIS_URI" envDefault:"localhost:6379"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"super-secret-key-change-in-production"`
	AdminSetupKey string `env:"ADMIN_SETUP_KEY"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Photo blob store (S3-compatible, e.g. Cloudflare R2 or MinIO).
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"S3_REGION" envDefault:"auto"`
	S3Bucket       string `env:"S3_BUCKET" envDefault:"questhunt-photos"`
	S3AccessKey    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"S3_SECRET_ACCESS_KEY"`
	PhotoBaseURL   string `env:"PHOTO_BASE_URL"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"` // 10 MB
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
