package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Redis    RedisConfig
	Log      LogConfig
	Profile  ProfileConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

// ProfileConfig points at the user service that owns profile records.
type ProfileConfig struct {
	UserServiceURL string
	Timeout        time.Duration
}

// GatewayConfig holds the gateway-side settings: where the authentication
// service and the downstream services live, and the rate-limit window.
type GatewayConfig struct {
	AuthServiceURL  string
	ValidateTimeout time.Duration
	ProductURL      string
	PaymentURL      string
	ReportingURL    string
	UserURL         string
	RateLimitRPM    int
	RateLimitWindow time.Duration
	RateLimitPrefix string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "auth_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnvRequired("JWT_SECRET"),
			TokenTTL: getDurationEnv("JWT_TOKEN_TTL", 24*time.Hour),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnvRequired("SENDGRID_API_KEY"),
			FromEmail:      getEnv("FROM_EMAIL", "noreply@kalado.com"),
			FromName:       getEnv("FROM_NAME", "Kalado"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Profile: ProfileConfig{
			UserServiceURL: getEnv("USER_SERVICE_URL", "http://localhost:8082"),
			Timeout:        getDurationEnv("USER_SERVICE_TIMEOUT", 5*time.Second),
		},
		Gateway: GatewayConfig{
			AuthServiceURL:  getEnv("AUTH_SERVICE_URL", "http://localhost:8081"),
			ValidateTimeout: getDurationEnv("AUTH_VALIDATE_TIMEOUT", 5*time.Second),
			ProductURL:      getEnv("PRODUCT_SERVICE_URL", "http://localhost:8083"),
			PaymentURL:      getEnv("PAYMENT_SERVICE_URL", "http://localhost:8084"),
			ReportingURL:    getEnv("REPORTING_SERVICE_URL", "http://localhost:8085"),
			UserURL:         getEnv("USER_SERVICE_URL", "http://localhost:8082"),
			RateLimitRPM:    getIntEnv("RATE_LIMIT_RPM", 120),
			RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			RateLimitPrefix: getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:gateway"),
		},
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
