package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// AI configuration
	AIProvider           string
	GeminiAPIKey         string
	GeminiTextModel      string
	GeminiEmbeddingModel string
	DeepSeekAPIKey       string
	DeepSeekAPIURL       string
	AIDeepJSONRepair     bool
	AIGenerationLimit    int

	// Cache configuration
	AICacheTTL    time.Duration
	QueryCacheTTL time.Duration

	// Object storage
	S3BucketName string
	AWSRegion    string
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// A missing .env file is normal outside local development.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[Config] failed to load .env file: %v", err)
		}
	}

	cfg := load(env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(env Environment) *Config {
	devDefault := func(v string) string {
		if env == Production {
			return ""
		}
		return v
	}

	cfg := &Config{
		Environment: env,

		ServerPort:  value("server_port", "8080"),
		ServerHost:  value("server_host", "0.0.0.0"),
		CORSOrigins: listValue("cors_origins", "http://localhost:5173,http://frontend:5173"),

		DBHost:     value("db_host", "localhost"),
		DBPort:     value("db_port", "5432"),
		DBUser:     value("db_user", devDefault("postgres")),
		DBPassword: value("db_password", devDefault("postgres")),
		DBName:     value("db_name", "recipe_finder"),
		DBSSLMode:  value("db_ssl_mode", "disable"),

		RedisHost:     value("redis_host", "localhost"),
		RedisPort:     value("redis_port", "6379"),
		RedisPassword: value("redis_password", ""),
		RedisDB:       intValue("redis_db", 0),
		RedisURL:      value("redis_url", ""),

		JWTSecret: value("jwt_secret", devDefault("your-secret-key")),

		AIProvider:           strings.ToLower(value("ai_provider", "gemini")),
		GeminiAPIKey:         value("gemini_api_key", ""),
		GeminiTextModel:      value("gemini_text_model", ""),
		GeminiEmbeddingModel: value("gemini_embedding_model", ""),
		DeepSeekAPIKey:       value("deepseek_api_key", ""),
		DeepSeekAPIURL:       value("deepseek_api_url", ""),
		AIDeepJSONRepair:     boolValue("ai_deep_json_repair", false),
		AIGenerationLimit:    intValue("ai_generation_limit", 20),

		AICacheTTL:    durationValue("ai_cache_ttl", time.Hour),
		QueryCacheTTL: durationValue("query_cache_ttl", time.Minute),

		S3BucketName: value("s3_bucket_name", ""),
		AWSRegion:    value("aws_region", ""),
	}

	return cfg
}

// value looks up name as an upper-case environment variable, then as a
// Docker secret, then falls back to def.
func value(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(name))); v != "" {
		return v
	}
	if v := readSecret(name); v != "" {
		return v
	}
	return def
}

func intValue(name string, def int) int {
	v := value(name, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid integer for %s: %q, using %d", name, v, def)
		return def
	}
	return n
}

func listValue(name, def string) []string {
	var out []string
	for _, v := range strings.Split(value(name, def), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func boolValue(name string, def bool) bool {
	v := value(name, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid boolean for %s: %q, using %t", name, v, def)
		return def
	}
	return b
}

func durationValue(name string, def time.Duration) time.Duration {
	v := value(name, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Config] invalid duration for %s: %q, using %s", name, v, def)
		return def
	}
	return d
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
