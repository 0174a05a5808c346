package config

import (
	"fmt"
	"os"
	"sync"

	"lotocart/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Upstream lottery API configuration
	LotteryAPIBaseURL string
	LotteryAPIUserID  string // account the upstream bills orders against

	// WhatsApp hand-off configuration
	WhatsAppPhone string // phone number for the manual payment path

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// HTTP server configuration
	ListenAddr string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		LotteryAPIBaseURL: os.Getenv("LOTTERY_API_BASE_URL"),
		LotteryAPIUserID:  os.Getenv("LOTTERY_API_USER_ID"),

		WhatsAppPhone: os.Getenv("WHATSAPP_PHONE"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.LotteryAPIBaseURL == "" {
			return nil, fmt.Errorf("LOTTERY_API_BASE_URL is required")
		}
		if config.LotteryAPIUserID == "" {
			return nil, fmt.Errorf("LOTTERY_API_USER_ID is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		LotteryAPIBaseURL: "http://lottery-api.test",
		LotteryAPIUserID:  "test-user",
		WhatsAppPhone:     "15550000000",
		ListenAddr:        ":0",
	}
}
