package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "storefront", cfg.Database.DatabaseName)
		assert.Equal(t, 15*time.Second, cfg.Shopify.Timeout)
		assert.Equal(t, 30*time.Second, cfg.Storage.SignedURLTTL)
		assert.Equal(t, "googleai/gemini-2.0-flash", cfg.Agent.Model)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("SHOPIFY_STOREFRONT_URL", "https://shop.example/api/graphql.json")
		_ = os.Setenv("SHOPIFY_STOREFRONT_TOKEN", "tok")
		_ = os.Setenv("ISSUE_BUCKET", "nnm-issues")
		_ = os.Setenv("ISSUE_URL_TTL", "10s")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.True(t, cfg.Auth.Enabled)
		assert.Equal(t, "https://shop.example/api/graphql.json", cfg.Shopify.StorefrontURL)
		assert.Equal(t, "tok", cfg.Shopify.AccessToken)
		assert.Equal(t, "nnm-issues", cfg.Storage.Bucket)
		assert.Equal(t, 10*time.Second, cfg.Storage.SignedURLTTL)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})

	t.Run("appends custom CORS origins to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://nnm.example, https://admin.nnm.example")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://nnm.example")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://admin.nnm.example")
	})
}
