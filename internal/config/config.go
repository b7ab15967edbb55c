package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Google   GoogleConfig
	SMTP     SMTPConfig
	Telegram TelegramConfig
	Upload   UploadConfig
	License  LicenseConfig
	Payment  PaymentConfig
	Frontend FrontendConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// GoogleConfig holds federated-identity verification settings.
// Audience is the OAuth client ID the ID tokens must carry.
type GoogleConfig struct {
	Issuer   string
	Audience string
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// TelegramConfig holds the admin alert channel settings
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
}

// UploadConfig holds file upload settings
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// LicenseConfig holds license lifecycle settings
type LicenseConfig struct {
	ReminderDays     int
	ReminderInterval time.Duration
	SweepInterval    time.Duration
}

// PaymentConfig holds payment processing settings.
// DemoGateway enables the always-succeeds online payment path; the
// process-online endpoint refuses requests while it is disabled.
type PaymentConfig struct {
	DemoGateway bool
}

// FrontendConfig holds URLs of the user and admin frontends
type FrontendConfig struct {
	UserURL  string
	AdminURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "adlicense"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),
		},
		Google: GoogleConfig{
			Issuer:   getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),
			Audience: getEnv("GOOGLE_CLIENT_ID", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
			APIBase:  getEnv("TELEGRAM_API_BASE", "https://api.telegram.org"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "uploads"),
			MaxSize: int64(getEnvAsInt("UPLOAD_MAX_SIZE", 5*1024*1024)),
		},
		License: LicenseConfig{
			ReminderDays:     getEnvAsInt("REMINDER_DAYS_BEFORE_EXPIRY", 5),
			ReminderInterval: getEnvAsDuration("LICENSE_REMINDER_INTERVAL", 24*time.Hour),
			SweepInterval:    getEnvAsDuration("LICENSE_SWEEP_INTERVAL", time.Hour),
		},
		Payment: PaymentConfig{
			DemoGateway: getEnvAsBool("PAYMENT_DEMO_GATEWAY", false),
		},
		Frontend: FrontendConfig{
			UserURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
			AdminURL: getEnv("ADMIN_URL", "http://localhost:5174"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
