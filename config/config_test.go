package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "DATA_FILE", "GITHUB_CACHE_TTL", "SESSION_IDLE_TTL", "CORS_ORIGINS", "FIREBASE_CREDENTIALS_PATH"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, repository.BackendFile, cfg.Store.Backend)
	assert.Equal(t, "./projects.json", cfg.Store.DataFile)
	assert.Equal(t, 5*time.Minute, cfg.GitHub.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Firebase.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("GITHUB_CACHE_TTL", "90s")
	t.Setenv("GITHUB_RATE_LIMIT", "2.5")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, ,https://me.dev")

	cfg := FromEnv()
	assert.Equal(t, repository.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.GitHub.CacheTTL)
	assert.Equal(t, 2.5, cfg.GitHub.RateLimit)
	assert.Equal(t, []string{"http://localhost:5173", "https://me.dev"}, cfg.Server.CORSOrigins)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("SESSION_IDLE_TTL", "soon")
	t.Setenv("SESSION_SWEEP_SPEC", "")

	cfg := FromEnv()
	assert.Equal(t, 0, cfg.Store.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("GITHUB_CACHE_TTL", "")
	t.Setenv("DOCSTORE_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")
	base := FromEnv

	cases := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "unknown STORE_BACKEND"},
		{"postgres without dsn", func(c *Config) { c.Store.Backend = repository.BackendPostgres; c.Store.DSN = "" }, "DB_DSN"},
		{"docstore without url", func(c *Config) { c.Store.Backend = repository.BackendDocstore }, "DOCSTORE_URL"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"production without firebase", func(c *Config) { c.App.Environment = "production" }, "FIREBASE_CREDENTIALS_PATH"},
		{"zero cache ttl", func(c *Config) { c.GitHub.CacheTTL = 0 }, "GITHUB_CACHE_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.edit(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("production with firebase", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		cfg.Firebase.CredentialsPath = "/etc/portfolio/firebase.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("docstore with mem url", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = repository.BackendDocstore
		cfg.Store.DocstoreURL = "mem://portfolio/ownerID"
		assert.NoError(t, cfg.Validate())
	})
}
