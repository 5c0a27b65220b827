package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Store    StoreConfig
	GitHub   GitHubConfig
	Firebase FirebaseConfig
	Sessions SessionConfig
}

type ServerConfig struct {
	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type StoreConfig struct {
	Backend       string
	DataFile      string
	DSN           string
	DBMaxConns    int
	DBMinConns    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BoltPath      string
	DocstoreURL   string
}

type GitHubConfig struct {
	Token     string
	APIURL    string
	CacheTTL  time.Duration
	RateLimit float64
}

type FirebaseConfig struct {
	CredentialsPath string
}

// Enabled reports whether ID tokens can be verified.
func (f FirebaseConfig) Enabled() bool {
	return f.CredentialsPath != ""
}

type SessionConfig struct {
	IdleTTL   time.Duration
	SweepSpec string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration from the process environment without
// validating it.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(getEnv("STORE_BACKEND", repository.BackendFile)),
			DataFile:      getEnv("DATA_FILE", "./projects.json"),
			DSN:           getEnv("DB_DSN", ""),
			DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
			DBMinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			BoltPath:      getEnv("BOLT_PATH", "./projects.db"),
			DocstoreURL:   getEnv("DOCSTORE_URL", ""),
		},
		GitHub: GitHubConfig{
			Token:     getEnv("GITHUB_TOKEN", ""),
			APIURL:    getEnv("GITHUB_API_URL", ""),
			CacheTTL:  getEnvAsDuration("GITHUB_CACHE_TTL", 5*time.Minute),
			RateLimit: getEnvAsFloat("GITHUB_RATE_LIMIT", 5),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Sessions: SessionConfig{
			IdleTTL:   getEnvAsDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SweepSpec: getEnv("SESSION_SWEEP_SPEC", "0 * * * * *"),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	// production only accepts verified ID tokens
	if c.App.Environment == "production" && !c.Firebase.Enabled() {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when APP_ENV=production")
	}

	switch c.Store.Backend {
	case repository.BackendFile:
		if c.Store.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file store")
		}
	case repository.BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case repository.BackendPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres store")
		}
	case repository.BackendBolt:
		if c.Store.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required for the bolt store")
		}
	case repository.BackendDocstore:
		if c.Store.DocstoreURL == "" {
			return fmt.Errorf("DOCSTORE_URL is required for the docstore store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.GitHub.CacheTTL <= 0 {
		return fmt.Errorf("GITHUB_CACHE_TTL must be positive")
	}
	if c.Sessions.SweepSpec == "" {
		return fmt.Errorf("SESSION_SWEEP_SPEC is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// comma separated, blanks dropped
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
