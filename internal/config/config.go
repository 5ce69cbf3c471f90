package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when API_BASE_URL is not set.
const DefaultAPIBaseURL = "http://localhost:5000"

// Config holds application configuration
type Config struct {
	Env        string
	LogLevel   string
	LogFormat  string
	APIBaseURL string

	// Client-side throttle for gateway calls; zero disables it.
	APIRateLimitRPS float64
	APIRateBurst    int

	// Session persistence for the CLI
	SessionStore  string
	SessionFile   string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Fake backend
	MockPort             string
	MockJWTSecret        string
	MockSeed             bool
	CORSAllowedOrigins   []string
	MockAuthRateLimitRPS float64
	MockAuthRateBurst    int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
		APIRateLimitRPS: getEnvAsFloat("API_RATE_LIMIT_RPS", 0),
		APIRateBurst:    getEnvAsInt("API_RATE_BURST", 1),

		SessionStore:  strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", "file"))),
		SessionFile:   getEnv("SESSION_FILE", defaultSessionFile()),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		MockPort:             getEnv("MOCK_PORT", "5000"),
		MockJWTSecret:        getEnv("MOCK_JWT_SECRET", "dev-secret"),
		MockSeed:             getEnvAsBool("MOCK_SEED", true),
		CORSAllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MockAuthRateLimitRPS: getEnvAsFloat("MOCK_AUTH_RATE_LIMIT_RPS", 5),
		MockAuthRateBurst:    getEnvAsInt("MOCK_AUTH_RATE_BURST", 10),
	}
}

// LoadDotEnv loads the given .env files (or ./.env) into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".clinicctl-session.json"
	}
	return dir + string(os.PathSeparator) + "clinicctl" + string(os.PathSeparator) + "session.json"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
