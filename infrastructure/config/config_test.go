package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment:  "development",
		BucketName:   "library-books",
		TableName:    "library-catalog",
		AuthProvider: "mock",
		BooksPrefix:  "books/",
		CoversPrefix: "covers/",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("S3_BUCKET", "library-books")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "library-catalog", cfg.TableName)
	assert.Equal(t, "TitleIndex", cfg.TitleIndexName)
	assert.Equal(t, "FileIndex", cfg.FileIndexName)
	assert.Equal(t, "books/", cfg.BooksPrefix)
	assert.Equal(t, "covers/", cfg.CoversPrefix)
	assert.Equal(t, "mock", cfg.AuthProvider)
	assert.Equal(t, "local-development-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.EqualValues(t, 50<<20, cfg.MaxUploadBytes)
}

func TestLoadRequiresBucket(t *testing.T) {
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("S3_BUCKET", "library-books")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestValidateNormalizesPrefixes(t *testing.T) {
	cfg := validConfig()
	cfg.BooksPrefix = "books"
	cfg.CoversPrefix = "covers"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "books/", cfg.BooksPrefix)
	assert.Equal(t, "covers/", cfg.CoversPrefix)
}

func TestValidateRejectsMockInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed in production")
}

func TestValidateCognitoRequiresPoolAndKey(t *testing.T) {
	cfg := validConfig()
	cfg.AuthProvider = "cognito"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COGNITO_USER_POOL_ID")

	cfg.CognitoUserPoolID = "us-east-1_abc123"
	cfg.CognitoClientID = "client-id"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_PUBLIC_KEY_PEM")

	cfg.JWTSecret = "shared-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.AuthProvider = "ldap"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AUTH_PROVIDER")
}
