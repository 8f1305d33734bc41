package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store backends selectable via STORE_BACKEND
const (
	BackendFlatFile = "flatfile"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Debug enables verbose logging and dev-only routes
	Debug bool

	// Persistence
	StoreBackend    string // flatfile | sqlite | postgres
	SnippetBackend  string // "" (same as StoreBackend) | redis
	DataDir         string
	IndexFile       string // Relative to DataDir unless absolute
	SnippetsFile    string
	ArtifactDir     string
	UploadDir       string
	UploadURLPrefix string
	SQLitePath      string
	DatabaseURL     string
	TablePrefix     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKey        string

	// Search
	SearchIndexPath string // Empty keeps the search index in memory

	// Auth - both empty disables authentication
	AuthJWTSecret string
	AuthJWKSURL   string

	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",

		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendFlatFile)),
		SnippetBackend:  strings.ToLower(getEnv("SNIPPET_BACKEND", "")),
		DataDir:         dataDir,
		IndexFile:       resolvePath(dataDir, getEnv("INDEX_FILE", "BlogData.json")),
		SnippetsFile:    resolvePath(dataDir, getEnv("SNIPPETS_FILE", "Snippets.json")),
		ArtifactDir:     resolvePath(dataDir, getEnv("ARTIFACT_DIR", "blogs")),
		UploadDir:       resolvePath(dataDir, getEnv("UPLOAD_DIR", filepath.Join("assets", "blog_images"))),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "assets/blog_images/"),
		SQLitePath:      resolvePath(dataDir, getEnv("SQLITE_PATH", "folio.db")),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TablePrefix:     getTablePrefix(env),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisKey:        getEnv("REDIS_SNIPPETS_KEY", "folio:snippets"),

		SearchIndexPath: getEnv("SEARCH_INDEX_PATH", ""),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// Validate checks that the selected backends have what they need
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFlatFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s, %s or %s)",
			c.StoreBackend, BackendFlatFile, BackendSQLite, BackendPostgres)
	}

	switch c.SnippetBackend {
	case "", c.StoreBackend:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s snippet backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown SNIPPET_BACKEND %q (want %s or empty)", c.SnippetBackend, BackendRedis)
	}

	if c.LogMaxFiles < 1 {
		return fmt.Errorf("LOG_MAX_FILES must be at least 1, got %d", c.LogMaxFiles)
	}

	return nil
}

// AuthEnabled reports whether requests must carry a bearer token
func (c *Config) AuthEnabled() bool {
	return c.AuthJWTSecret != "" || c.AuthJWKSURL != ""
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
