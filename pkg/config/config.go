package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Spaces   SpacesConfig
	Gemini   GeminiConfig
	Gradient GradientConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SpacesConfig holds the S3-compatible object storage configuration
// (DigitalOcean Spaces).
type SpacesConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// GeminiConfig holds the generation gateway configuration.
type GeminiConfig struct {
	APIKey       string
	Model        string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// GradientConfig holds the DigitalOcean Gradient knowledge-base
// configuration.
type GradientConfig struct {
	AccessToken        string
	BaseURL            string
	RetrieveEndpoint   string
	DatabaseID         string
	ProjectID          string
	EmbeddingModelUUID string
	SpacesRegion       string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "virtuali_gob"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Spaces: SpacesConfig{
			Endpoint:  getEnv("DIGITALOCEAN_SPACES_ENDPOINT", "https://nyc3.digitaloceanspaces.com"),
			Region:    getEnv("DIGITALOCEAN_SPACES_REGION", "us-east-1"),
			Bucket:    getEnv("DIGITALOCEAN_SPACES_BUCKET", ""),
			AccessKey: getEnv("DIGITALOCEAN_SPACES_KEY", ""),
			SecretKey: getEnv("DIGITALOCEAN_SPACES_SECRET", ""),
		},
		Gemini: GeminiConfig{
			APIKey:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Model:        getEnv("GOOGLE_GEMINI_MODEL", "gemini-2.5-flash"),
			PollInterval: getEnvAsDuration("GEMINI_FILE_POLL_INTERVAL", 5*time.Second),
			PollTimeout:  getEnvAsDuration("GEMINI_FILE_POLL_TIMEOUT", 60*time.Second),
		},
		Gradient: GradientConfig{
			AccessToken:        getEnv("DIGITALOCEAN_PERSONAL_ACCESS_TOKEN", ""),
			BaseURL:            getEnv("DIGITALOCEAN_GRADIENT_BASE_URL", "https://api.digitalocean.com"),
			RetrieveEndpoint:   getEnv("DIGITALOCEAN_KNOWLEDGE_BASE_RETRIEVE_ENDPOINT", "https://kbaas.do-ai.run/v1/"),
			DatabaseID:         getEnv("OPENSEARCH_DATABASE_ID", ""),
			ProjectID:          getEnv("DIGITALOCEAN_PROJECT_ID", ""),
			EmbeddingModelUUID: getEnv("GRADIENT_EMBEDDING_MODEL_UUID", "22652f75-79ed-11ef-bf8f-4e013e2ddde4"),
			SpacesRegion:       getEnv("DIGITALOCEAN_SPACES_REGION", "nyc3"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "virtuali-gob-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
