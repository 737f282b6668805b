package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for STORE_DRIVER.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode            string        `mapstructure:"GIN_MODE"`
	ServerHost         string        `mapstructure:"SERVER_HOST"`
	ServerPort         string        `mapstructure:"SERVER_PORT"`
	ServerTimeout      time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Store selection
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	// MongoDB Configuration
	MongoURI            string        `mapstructure:"MONGODB_URI"`
	MongoDatabase       string        `mapstructure:"MONGODB_DATABASE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGODB_CONNECT_TIMEOUT_SECONDS"`

	// SQL Database Configuration (STORE_DRIVER=postgres|sqlite)
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`
	SQLitePath        string        `mapstructure:"SQLITE_PATH"`

	// Redis (optional, token blocklist)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Sessions
	SessionSecret           string        `mapstructure:"SESSION_SECRET"`
	SessionTTL              time.Duration `mapstructure:"SESSION_TTL_HOURS"`
	SessionCookieName       string        `mapstructure:"SESSION_COOKIE_NAME"`
	EmailCookieMaxAge       time.Duration `mapstructure:"EMAIL_COOKIE_MAX_AGE_DAYS"`
	RegistrationEmailDomain string        `mapstructure:"REGISTRATION_EMAIL_DOMAIN"`

	// Uploads
	UploadDir        string `mapstructure:"UPLOAD_DIR"`
	UploadPublicPath string `mapstructure:"UPLOAD_PUBLIC_PATH"`
	UploadMaxBytes   int64  `mapstructure:"UPLOAD_MAX_BYTES"`

	// Cron Jobs
	AvatarAuditJobSchedule string `mapstructure:"AVATAR_AUDIT_SCHEDULE"`
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("STORE_DRIVER", StoreDriverMongo)

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "myapp")
	v.SetDefault("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "myapp")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("SQLITE_PATH", "myapp.db")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL_HOURS", 720)
	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("EMAIL_COOKIE_MAX_AGE_DAYS", 7)
	v.SetDefault("REGISTRATION_EMAIL_DOMAIN", "abc.com")

	v.SetDefault("UPLOAD_DIR", "./public/uploads")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)

	v.SetDefault("AVATAR_AUDIT_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.MongoConnectTimeout = time.Duration(v.GetInt("MONGODB_CONNECT_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.SessionTTL = time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour
	cfg.EmailCookieMaxAge = time.Duration(v.GetInt("EMAIL_COOKIE_MAX_AGE_DAYS")) * 24 * time.Hour

	// Env values arrive as a single comma separated string.
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.UploadPublicPath = "/" + strings.Trim(cfg.UploadPublicPath, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("FATAL: SESSION_SECRET is not set. It is required to sign session tokens")
	}
	switch c.StoreDriver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("FATAL: unsupported STORE_DRIVER %q (expected mongo, postgres or sqlite)", c.StoreDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("FATAL: SESSION_TTL_HOURS must be positive")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("FATAL: UPLOAD_DIR is not set")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
