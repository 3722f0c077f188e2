package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	apperrors "linkedinsight/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port        string
	Env         string
	LogFile     string
	CORSOrigins []string

	// Neo4j job store
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	EmbedModel    string

	// Job ingestion
	ScraperBaseURL    string
	ScraperDelayMS    int
	IngestConcurrency int

	// Skills graph
	SeedGraph      bool
	SkillsSeedFile string // Optional YAML catalog overriding the embedded one
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		Env:               getEnv("ENV", "development"),
		LogFile:           getEnv("LOG_FILE", ""),
		CORSOrigins:       getEnvList("CORS_ORIGINS", defaultCORSOrigins),
		Neo4jURI:          getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:         getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:     getEnv("NEO4J_PASSWORD", "password"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o-mini"),
		EmbedModel:        getEnv("EMBED_MODEL", "text-embedding-3-large"),
		ScraperBaseURL:    getEnv("SCRAPER_BASE_URL", "https://www.indeed.com"),
		ScraperDelayMS:    getEnvInt("SCRAPER_DELAY_MS", 500),
		IngestConcurrency: getEnvInt("INGEST_CONCURRENCY", 4),
		SeedGraph:         getEnvBool("SEED_GRAPH", true),
		SkillsSeedFile:    getEnv("SKILLS_SEED_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8000",
	"http://localhost:8080",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:8000",
	"http://127.0.0.1:8080",
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.ChatModel == "" {
		return apperrors.NewConfigMissingRequired("CHAT_MODEL")
	}
	if c.EmbedModel == "" {
		return apperrors.NewConfigMissingRequired("EMBED_MODEL")
	}
	if c.ScraperDelayMS < 0 {
		return apperrors.NewConfigValidationFailed("SCRAPER_DELAY_MS", "must not be negative")
	}
	if c.IngestConcurrency < 1 {
		return apperrors.NewConfigValidationFailed("INGEST_CONCURRENCY", "must be at least 1")
	}
	// OpenAI API key is optional for development; AI and embedding endpoints fail without it
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
