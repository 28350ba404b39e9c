package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Email  EmailConfig
	Avatar AvatarConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=founderflow"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type EmailConfig struct {
	// ResendAPIKey authenticates against the Resend REST API.
	ResendAPIKey string `env:"RESEND_API_KEY"`
	// HookSecret verifies inbound send-email webhook deliveries. Verification
	// is skipped when empty (local development).
	HookSecret string `env:"SEND_EMAIL_HOOK_SECRET"`
	// AuthURL is the base URL verification links point at.
	AuthURL string `env:"AUTH_URL, default=http://localhost:8080"`
}

type AvatarConfig struct {
	Dir     string `env:"AVATAR_DIR,      default=./data/avatars"`
	BaseURL string `env:"AVATAR_BASE_URL, default=http://localhost:8080/avatars"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
