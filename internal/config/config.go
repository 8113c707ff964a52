// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Stripe   StripeConfig
	Admin    AdminConfig
	Delivery DeliveryConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StripeConfig contains Stripe payment configuration.
// Empty keys disable payment features rather than failing startup.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
}

// AdminConfig contains admin dashboard credentials.
// PasswordHash takes precedence; Password is a plaintext fallback hashed
// lazily on first login attempt.
type AdminConfig struct {
	PasswordHash string
	Password     string
	CookieMaxAge time.Duration
}

// DeliveryConfig contains the shipping fee rules, in cents
type DeliveryConfig struct {
	FreeThreshold int64
	FlatFee       int64
}

// PaymentConfig contains payment-processing limits, in cents
type PaymentConfig struct {
	MinAmount int64
	Currency  string
}

// RedisConfig contains optional Redis configuration, used only by the
// rate limiter; an empty host disables it
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	TrustedProxies     []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Fresh Meals"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Stripe: StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:     getEnv("ADMIN_PASSWORD", "freshmeals"),
			CookieMaxAge: getEnvAsDuration("ADMIN_COOKIE_MAX_AGE", 12*time.Hour),
		},
		Delivery: DeliveryConfig{
			FreeThreshold: getEnvAsInt64("DELIVERY_FREE_THRESHOLD", 7500),
			FlatFee:       getEnvAsInt64("DELIVERY_FLAT_FEE", 800),
		},
		Payment: PaymentConfig{
			MinAmount: getEnvAsInt64("PAYMENT_MIN_AMOUNT", 50),
			Currency:  getEnv("PAYMENT_CURRENCY", "usd"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Delivery.FreeThreshold < 0 {
		return fmt.Errorf("DELIVERY_FREE_THRESHOLD must not be negative")
	}
	if c.Delivery.FlatFee < 0 {
		return fmt.Errorf("DELIVERY_FLAT_FEE must not be negative")
	}

	if c.Payment.MinAmount < 0 {
		return fmt.Errorf("PAYMENT_MIN_AMOUNT must not be negative")
	}

	// An admin dashboard without any credential would be wide open
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	return nil
}

// PaymentsEnabled reports whether Stripe credentials are configured
func (c *Config) PaymentsEnabled() bool {
	return c.Stripe.SecretKey != ""
}

// RateLimitEnabled reports whether the Redis-backed rate limiter is configured
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Host != ""
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
