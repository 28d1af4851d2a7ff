package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	TransportCookie = "cookie"
	TransportBearer = "bearer"

	defaultJWTSecret = "dev-secret-change-in-production"
)

type Config struct {
	Port            string
	Env             string
	Version         string
	DBDriver        string
	DatabaseURL     string
	JWTSecret       string
	SessionSecret   string
	AuthTransport   string
	CORSOrigins     []string
	TrustedProxies  []string
	RedisAddr       string
	RedisPassword   string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", EnvDevelopment)
	jwtSecret := getEnv("JWT_SECRET", defaultJWTSecret)

	defaultOrigins := "http://localhost:5173,http://localhost:3000"
	if env == EnvProduction {
		defaultOrigins = ""
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		Version:         getEnv("APP_VERSION", "1.0.0"),
		DBDriver:        getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       jwtSecret,
		SessionSecret:   getEnv("SESSION_SECRET", jwtSecret),
		AuthTransport:   getEnv("AUTH_TRANSPORT", TransportCookie),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", defaultOrigins)),
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// Validate reports the first configuration problem that would stop the server from starting.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.AuthTransport {
	case TransportCookie, TransportBearer:
	default:
		return fmt.Errorf("unsupported AUTH_TRANSPORT %q", c.AuthTransport)
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("unsupported APP_ENV %q", c.Env)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
			}
		}
	}

	if c.RateLimitMax < 1 || c.RateLimitWindow <= 0 {
		return errors.New("rate limit settings must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// GinMode maps the application environment onto gin's run modes.
func (c *Config) GinMode() string {
	if c.IsProduction() {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
