package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	AppPort   string `env:"PORT" envDefault:"3000"`
	AppMode   string `env:"APP_MODE" envDefault:"debug"`
	LogMode   string `env:"LOG_MODE" envDefault:"development"`
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	DBDriver      string        `env:"DB_DRIVER" envDefault:"mongo"`
	MongoURI      string        `env:"MONGO" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"chat_history"`
	PostgresDSN   string        `env:"POSTGRES_DSN" envDefault:"host=localhost user=postgres password=postgres dbname=chat_history port=5432 sslmode=disable TimeZone=UTC"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	StoreRetries  int           `env:"STORE_RETRIES" envDefault:"3"`

	ImageKitEndpoint   string        `env:"IMAGE_KIT_ENDPOINT"`
	ImageKitPublicKey  string        `env:"IMAGE_KIT_PUBLIC_KEY"`
	ImageKitPrivateKey string        `env:"IMAGE_KIT_PRIVATE_KEY"`
	ImageKitTokenTTL   time.Duration `env:"IMAGE_KIT_TOKEN_TTL" envDefault:"30m"`

	S3Region     string        `env:"S3_REGION"`
	S3Bucket     string        `env:"S3_BUCKET"`
	S3AccessKey  string        `env:"S3_ACCESS_KEY"`
	S3SecretKey  string        `env:"S3_SECRET_KEY"`
	S3Endpoint   string        `env:"S3_ENDPOINT"`
	S3PublicBase string        `env:"S3_PUBLIC_BASE"`
	S3PresignTTL time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	ChatWriteLimit  int           `env:"CHAT_WRITE_LIMIT" envDefault:"60"`
	ChatWriteWindow time.Duration `env:"CHAT_WRITE_WINDOW" envDefault:"60s"`

	AuthEnabled   bool   `env:"AUTH_ENABLED" envDefault:"false"`
	JWTSecret     string `env:"JWT_SECRET"`
	DefaultUserID string `env:"DEFAULT_USER_ID" envDefault:"test-user-id"`
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads the process environment into a Config and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.ClientURL = strings.TrimRight(strings.TrimSpace(cfg.ClientURL), "/")
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMongo, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	if c.ImageKitTokenTTL <= 0 || c.ImageKitTokenTTL >= time.Hour {
		return fmt.Errorf("IMAGE_KIT_TOKEN_TTL must be between 0 and 1h, got %s", c.ImageKitTokenTTL)
	}
	// The limiter sets key expiry in whole seconds.
	if c.ChatWriteWindow < time.Second {
		return fmt.Errorf("CHAT_WRITE_WINDOW must be at least 1s, got %s", c.ChatWriteWindow)
	}
	if c.ChatWriteLimit <= 0 {
		return fmt.Errorf("CHAT_WRITE_LIMIT must be positive, got %d", c.ChatWriteLimit)
	}
	if c.StoreRetries < 0 {
		c.StoreRetries = 0
	}
	return nil
}

func (c *Config) S3Enabled() bool {
	return c.S3Region != "" && c.S3Bucket != ""
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
