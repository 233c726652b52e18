package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion        string `yaml:"aws_region"`
	ArticlesTable    string `yaml:"articles_table"`
	IndexBucket      string `yaml:"index_bucket"`
	ImageBucket      string `yaml:"image_bucket"`
	UploadURLTTLSecs int    `yaml:"upload_url_ttl_seconds"`

	// Lambda configuration
	IsLambda           bool   `yaml:"-"`
	LambdaFunctionName string `yaml:"-"`

	// Reconciliation
	ReconcileConcurrency int `yaml:"reconcile_concurrency"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Authentication
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// Observability
	MetricsNamespace string `yaml:"metrics_namespace"`

	// Feature flags
	EnableMetrics  bool `yaml:"enable_metrics"`
	EnableTracing  bool `yaml:"enable_tracing"`
	EnableCORS     bool `yaml:"enable_cors"`
	UseMemoryStore bool `yaml:"use_memory_store"`
}

// LoadConfig loads configuration from, in increasing priority: defaults, the
// YAML file named by CONFIG_FILE, a local .env file and the environment.
// The .env file is only read outside Lambda.
func LoadConfig() (*Config, error) {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		AWSRegion:            "ap-northeast-1",
		UploadURLTTLSecs:     300,
		ReconcileConcurrency: 4,
		LogLevel:             "info",
		JWTIssuer:            "wikicollector",
		MetricsNamespace:     "WikiCollector",
		EnableCORS:           true,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.ArticlesTable = getEnv("WIKI_ARTICLES_TABLE_NAME", c.ArticlesTable)
	c.IndexBucket = getEnv("OBJECT_BUCKET_NAME", c.IndexBucket)
	c.ImageBucket = getEnv("WIKI_IMAGE_BUCKET_NAME", c.ImageBucket)
	c.UploadURLTTLSecs = getEnvInt("UPLOAD_URL_TTL_SECONDS", c.UploadURLTTLSecs)

	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", "")
	c.IsLambda = c.LambdaFunctionName != ""

	c.ReconcileConcurrency = getEnvInt("RECONCILE_CONCURRENCY", c.ReconcileConcurrency)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)

	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.UseMemoryStore = getEnvBool("USE_MEMORY_STORE", c.UseMemoryStore)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.UploadURLTTLSecs <= 0 {
		return fmt.Errorf("UPLOAD_URL_TTL_SECONDS must be positive")
	}
	if c.ReconcileConcurrency <= 0 {
		return fmt.Errorf("RECONCILE_CONCURRENCY must be positive")
	}

	if c.IsProduction() {
		if c.UseMemoryStore {
			return fmt.Errorf("USE_MEMORY_STORE is not allowed in production")
		}
		if c.ArticlesTable == "" {
			return fmt.Errorf("WIKI_ARTICLES_TABLE_NAME is required")
		}
		if c.IndexBucket == "" {
			return fmt.Errorf("OBJECT_BUCKET_NAME is required")
		}
		if c.ImageBucket == "" {
			return fmt.Errorf("WIKI_IMAGE_BUCKET_NAME is required")
		}
	}

	return nil
}

// UploadURLTTL returns the presigned URL lifetime
func (c *Config) UploadURLTTL() time.Duration {
	return time.Duration(c.UploadURLTTLSecs) * time.Second
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
