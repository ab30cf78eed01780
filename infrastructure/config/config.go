package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Server
	ServerAddress   string
	Environment     string
	ShutdownTimeout time.Duration
	IsLambda        bool

	// AWS
	AWSRegion string

	// DynamoDB
	TableName      string
	TitleIndexName string
	FileIndexName  string

	// S3
	BucketName   string
	BooksPrefix  string
	CoversPrefix string

	// Auth
	AuthProvider      string
	CognitoUserPoolID string
	CognitoClientID   string
	JWTSecret         string
	JWTPublicKey      string
	JWTIssuer         string
	JWTAudience       string

	// Redis
	RedisAddr     string
	RedisPassword string

	// EventBridge
	EventBusName string

	// Observability
	LogLevel         string
	MetricsNamespace string
	EnableTracing    bool

	// HTTP
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	MaxUploadBytes     int64
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		IsLambda:        os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		TableName:      getEnv("DYNAMODB_TABLE", "library-catalog"),
		TitleIndexName: getEnv("TITLE_INDEX_NAME", "TitleIndex"),
		FileIndexName:  getEnv("FILE_INDEX_NAME", "FileIndex"),

		BucketName:   getEnv("S3_BUCKET", ""),
		BooksPrefix:  getEnv("BOOKS_PREFIX", "books/"),
		CoversPrefix: getEnv("COVERS_PREFIX", "covers/"),

		AuthProvider:      getEnv("AUTH_PROVIDER", "mock"),
		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTPublicKey:      getEnv("JWT_PUBLIC_KEY_PEM", ""),
		JWTIssuer:         getEnv("JWT_ISSUER", "library-backend"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "library-app"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		EventBusName: getEnv("EVENT_BUS_NAME", ""),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "Library/Backend"),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxUploadBytes:     getEnvInt64("MAX_UPLOAD_BYTES", 50<<20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present for the current environment.
func (c *Config) Validate() error {
	if c.BucketName == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	if c.TableName == "" {
		return fmt.Errorf("DYNAMODB_TABLE is required")
	}

	switch c.AuthProvider {
	case "cognito":
		if c.CognitoUserPoolID == "" || c.CognitoClientID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID and COGNITO_CLIENT_ID are required when AUTH_PROVIDER=cognito")
		}
		if c.JWTPublicKey == "" && c.JWTSecret == "" {
			return fmt.Errorf("JWT_PUBLIC_KEY_PEM or JWT_SECRET is required when AUTH_PROVIDER=cognito")
		}
	case "mock":
		if c.IsProduction() {
			return fmt.Errorf("AUTH_PROVIDER=mock is not allowed in production")
		}
		if c.JWTSecret == "" {
			c.JWTSecret = "local-development-secret"
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.IsProduction() && c.AuthProvider != "cognito" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	if !strings.HasSuffix(c.BooksPrefix, "/") {
		c.BooksPrefix += "/"
	}
	if !strings.HasSuffix(c.CoversPrefix, "/") {
		c.CoversPrefix += "/"
	}

	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
