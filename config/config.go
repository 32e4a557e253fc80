package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port    string
	GinMode string

	DBDriver                 string
	DatabaseURL              string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	AutoMigrate              bool
	SeedData                 bool

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	AMQPURL   string
	AMQPQueue string

	AllowedOrigins  []string
	RateLimitWrites int
	RateLimitWindow time.Duration
	UseHTTPS        bool
	TLSCertFile     string
	TLSKeyFile      string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		GinMode:                  "debug",
		DBDriver:                 "postgres",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		AutoMigrate:              true,
		SeedData:                 true,
		RedisURL:                 "localhost:6379",
		CacheTTL:                 5 * time.Minute,
		AMQPQueue:                "gameclub.sessions",
		AllowedOrigins:           []string{"http://localhost:3000", "http://localhost:8080"},
		RateLimitWrites:          60,
		RateLimitWindow:          time.Minute,
		TLSCertFile:              "certs/cert.pem",
		TLSKeyFile:               "certs/key.pem",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}
	if raw := os.Getenv("DB_DRIVER"); raw != "" {
		cfg.DBDriver = strings.ToLower(raw)
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoMigrate = value
		}
	}
	if raw := os.Getenv("SEED_DATA"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.SeedData = value
		}
	}
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		cfg.RedisURL = raw
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.CacheTTL = value
		}
	}
	cfg.AMQPURL = os.Getenv("AMQP_URL")
	if raw := os.Getenv("AMQP_QUEUE"); raw != "" {
		cfg.AMQPQueue = raw
	}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = splitList(raw)
	}
	if raw := os.Getenv("RATE_LIMIT_WRITES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.RateLimitWrites = value
		}
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.RateLimitWindow = value
		}
	}
	if raw := os.Getenv("USE_HTTPS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.UseHTTPS = value
		}
	}
	if raw := os.Getenv("TLS_CERT_FILE"); raw != "" {
		cfg.TLSCertFile = raw
	}
	if raw := os.Getenv("TLS_KEY_FILE"); raw != "" {
		cfg.TLSKeyFile = raw
	}
	return cfg
}

// ConnMaxLifetime returns the pool lifetime as a duration.
func (c Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeSeconds) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
