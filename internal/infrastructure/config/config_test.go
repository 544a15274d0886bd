package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp 切換到沒有 .env 的暫存目錄
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.RecipeModel)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.ChatModel)
	assert.Equal(t, "data", cfg.Store.DataDir)
	assert.Equal(t, "saved_recipes.json", cfg.Store.FileName)
	assert.Equal(t, filepath.Join("data", "saved_recipes.json"), cfg.Store.Path())
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GOOGLE_API_KEY", "test-key-123456")
	t.Setenv("GEMINI_RECIPE_MODEL", "gemini-test")
	t.Setenv("DATA_DIR", "/tmp/recipes")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-key-123456", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-test", cfg.Gemini.RecipeModel)
	assert.Equal(t, "/tmp/recipes", cfg.Store.DataDir)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfigRejectsUnknownSessionBackend(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SESSION_BACKEND", "etcd")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Gemini:    GeminiConfig{BaseURL: "http://x", RecipeModel: "a", ChatModel: "b"},
			Store:     StoreConfig{DataDir: "data", FileName: "f.json"},
			Session:   SessionConfig{Backend: "memory", TTL: time.Hour},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 1, Window: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"missing model", func(c *Config) { c.Gemini.ChatModel = "" }, "models"},
		{"missing store file", func(c *Config) { c.Store.FileName = "" }, "store"},
		{"redis without addr", func(c *Config) { c.Session.Backend = "redis" }, "redis addr"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session ttl"},
		{"bad rate limit", func(c *Config) { c.RateLimit.Requests = 0 }, "rate limit"},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(unset)", MaskAPIKey(""))
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
