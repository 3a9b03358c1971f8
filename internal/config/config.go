// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Database DatabaseConfig
	Email    EmailConfig
	SMS      SMSConfig
	Reminder ReminderConfig
}

// ServerConfig configures the local HTTP surface front-ends attach to.
type ServerConfig struct {
	HTTPAddr    string
	Environment string
}

// BackendConfig points at the remote task backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig locates the local SQLite store.
type DatabaseConfig struct {
	Path string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AppName      string
	TestingMode  bool
}

// SMSConfig configures the HTTP SMS gateway used for SMS reminders.
// An empty GatewayURL disables the channel.
type SMSConfig struct {
	GatewayURL string
	APIKey     string
	Sender     string
}

type ReminderConfig struct {
	// SweepInterval drives the recycle-bin sweep job.
	SweepInterval time.Duration
	// RetentionDays is how long soft-deleted entities stay restorable.
	RetentionDays int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:    getEnv("HTTP_ADDR", ":8787"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8888"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "focusdeck.db"),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("SMTP_FROM_EMAIL", "no-reply@focusdeck.local"),
			FromName:     getEnv("SMTP_FROM_NAME", "FocusDeck"),
			AppName:      getEnv("APP_NAME", "FocusDeck"),
			TestingMode:  getEnvAsBool("EMAIL_TESTING_MODE", false),
		},
		SMS: SMSConfig{
			GatewayURL: getEnv("SMS_GATEWAY_URL", ""),
			APIKey:     getEnv("SMS_API_KEY", ""),
			Sender:     getEnv("SMS_SENDER", "FocusDeck"),
		},
		Reminder: ReminderConfig{
			SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", time.Hour),
			RetentionDays: getEnvAsInt("RETENTION_DAYS", 7),
		},
	}, nil
}

// ValidateConfig checks settings that have no workable default.
func (c *Config) ValidateConfig() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.Reminder.RetentionDays <= 0 {
		return fmt.Errorf("RETENTION_DAYS must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}
