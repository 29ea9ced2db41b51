// Package config loads the suppository service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds the complete application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Cache      CacheConfig
	Calculator CalculatorConfig
	Chat       ChatConfig
	Auth       AuthConfig
	Database   DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	RequestTimeout time.Duration
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig sizes the calculation result cache. Size 0 disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CalculatorConfig holds defaults applied when a request leaves the
// overage or rounding step unset.
type CalculatorConfig struct {
	DefaultOverage      float64
	DefaultRoundingStep float64
}

// ChatConfig holds conversational session limits.
type ChatConfig struct {
	SessionTTL       time.Duration
	MaxSessions      int
	MaxMessageLength int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
	// Instructors maps an instructor email to its bcrypt password hash.
	Instructors    map[string]string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

// JWTEnabled reports whether instructor sign-in is configured.
func (a AuthConfig) JWTEnabled() bool {
	return len(a.Instructors) > 0
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	Enabled      bool
	LogsTTL      time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			Size: getEnvInt("CACHE_SIZE", 1000),
			TTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Calculator: CalculatorConfig{
			DefaultOverage:      getEnvFloat("CALC_DEFAULT_OVERAGE", 0),
			DefaultRoundingStep: getEnvFloat("CALC_DEFAULT_ROUNDING_STEP", 0),
		},
		Chat: ChatConfig{
			SessionTTL:       getEnvDuration("CHAT_SESSION_TTL", 2*time.Hour),
			MaxSessions:      getEnvInt("CHAT_MAX_SESSIONS", 10000),
			MaxMessageLength: getEnvInt("CHAT_MAX_MESSAGE_LENGTH", 2000),
		},
		Auth: AuthConfig{
			Enabled:        getEnvBool("AUTH_ENABLED", false),
			APIKeys:        parseAPIKeys(os.Getenv("API_KEYS")),
			Instructors:    parseInstructors(os.Getenv("INSTRUCTOR_ACCOUNTS")),
			JWTSecretKey:   getEnv("JWT_SECRET_KEY", defaultJWTSecret),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "suppository_service"),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate reports settings that would make the service misbehave.
func (c Config) Validate() error {
	var errs []error
	if c.Calculator.DefaultOverage < 0 {
		errs = append(errs, errors.New("CALC_DEFAULT_OVERAGE must not be negative"))
	}
	if c.Calculator.DefaultRoundingStep < 0 {
		errs = append(errs, errors.New("CALC_DEFAULT_ROUNDING_STEP must not be negative"))
	}
	if c.Chat.MaxMessageLength < 1 {
		errs = append(errs, errors.New("CHAT_MAX_MESSAGE_LENGTH must be positive"))
	}
	if c.Auth.JWTEnabled() && c.Auth.JWTSecretKey == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set when INSTRUCTOR_ACCOUNTS is configured"))
	}
	if c.Auth.JWTEnabled() && !c.Database.Enabled {
		errs = append(errs, fmt.Errorf("INSTRUCTOR_ACCOUNTS has %d account(s) but MONGODB_ENABLED is false; history will be empty", len(c.Auth.Instructors)))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

// parseInstructors reads "email:bcrypt-hash" pairs separated by commas.
// bcrypt hashes never contain ':' or ',', so the first ':' splits each pair.
func parseInstructors(s string) map[string]string {
	if s == "" {
		return nil
	}
	result := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		email, hash, ok := strings.Cut(strings.TrimSpace(pair), ":")
		email = strings.ToLower(strings.TrimSpace(email))
		if !ok || email == "" || hash == "" {
			continue
		}
		result[email] = hash
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseCORSOrigins(s string) []string {
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	result := append([]string{}, defaults...)
	for _, p := range strings.Split(s, ",") {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
