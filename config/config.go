// Package config provides configuration management for the storefront service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Shopify  ShopifyConfig
	Storage  StorageConfig
	Agent    AgentConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
}

// AuthConfig holds admin authentication configuration.
type AuthConfig struct {
	Enabled          bool
	JWTSecretKey     string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	// APIKeys protect the upload endpoint when JWT auth is disabled.
	APIKeys map[string]bool
	// Bootstrap credentials for the initial staff account. When set and no
	// such account exists, it is created at startup.
	BootstrapEmail    string
	BootstrapPassword string
	BootstrapName     string
}

// DatabaseConfig holds MongoDB configuration for issue and user metadata.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	Enabled      bool
}

// ShopifyConfig holds Shopify Storefront API configuration.
type ShopifyConfig struct {
	// StorefrontURL is the full GraphQL endpoint of the shop, e.g.
	// https://{shop}.myshopify.com/api/2024-01/graphql.json
	StorefrontURL string
	// AccessToken is the public storefront access token.
	AccessToken string
	// Timeout bounds a single storefront round-trip.
	Timeout time.Duration
	// CircuitBreaker configuration for the storefront client.
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// StorageConfig holds the issue PDF bucket configuration.
type StorageConfig struct {
	Bucket string
	// SignedURLTTL is how long an issue download link stays valid.
	SignedURLTTL time.Duration
	Enabled      bool
}

// AgentConfig holds copywriter agent configuration.
type AgentConfig struct {
	GoogleAIAPIKey string
	Model          string
	// BackendURL is where the agent fetches issue data from.
	BackendURL string
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			RateLimit:   getEnvInt("RATE_LIMIT", 100),
			RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser: getEnv("SWAGGER_USER", ""),
			SwaggerPass: getEnv("SWAGGER_PASS", ""),
		},
		Auth: AuthConfig{
			Enabled:           getEnvBool("AUTH_ENABLED", false),
			JWTSecretKey:      getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTRefreshSecret:  getEnv("JWT_REFRESH_SECRET_KEY", "your-refresh-secret-key-change-in-production"),
			AccessTokenTTL:    getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL:   getEnvDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
			APIKeys:           parseAPIKeys(os.Getenv("API_KEYS")),
			BootstrapEmail:    getEnv("STAFF_BOOTSTRAP_EMAIL", ""),
			BootstrapPassword: getEnv("STAFF_BOOTSTRAP_PASSWORD", ""),
			BootstrapName:     getEnv("STAFF_BOOTSTRAP_NAME", "Editor"),
		},
		Database: DatabaseConfig{
			URI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName: getEnv("MONGODB_DATABASE", "storefront"),
			Enabled:      getEnvBool("MONGODB_ENABLED", false),
		},
		Shopify: ShopifyConfig{
			StorefrontURL:                  getEnv("SHOPIFY_STOREFRONT_URL", ""),
			AccessToken:                    getEnv("SHOPIFY_STOREFRONT_TOKEN", ""),
			Timeout:                        getEnvDuration("SHOPIFY_TIMEOUT", 15*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Bucket:       getEnv("ISSUE_BUCKET", ""),
			SignedURLTTL: getEnvDuration("ISSUE_URL_TTL", 30*time.Second),
			Enabled:      getEnvBool("STORAGE_ENABLED", false),
		},
		Agent: AgentConfig{
			GoogleAIAPIKey: getEnv("GOOGLE_AI_API_KEY", ""),
			Model:          getEnv("AGENT_MODEL", "googleai/gemini-2.0-flash"),
			BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080"),
		},
	}
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
	keys := make(map[string]bool)
	for _, p := range strings.Split(s, ",") {
		if key := strings.TrimSpace(p); key != "" {
			keys[key] = true
		}
	}
	return keys
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
