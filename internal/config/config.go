// Package config loads application configuration from a JSON config file,
// environment variables and, for credentials, Azure Key Vault.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/secrets"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	API     APIConfig
	Store   StoreConfig
	Secrets SecretsConfig
	Logging LoggingConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

// APIConfig describes the CRM backend this application talks to
type APIConfig struct {
	// BaseURL is the backend root, e.g. https://crm.example.com/api
	BaseURL string
	// Token is the bearer token sent on every request.
	// Loaded from the environment or Key Vault, never from the config file.
	Token string
	// Timeout is the per-request timeout in seconds
	Timeout int
}

// StoreConfig describes the local action log database
type StoreConfig struct {
	Path string
}

type SecretsConfig struct {
	// Source determines where credentials are loaded from:
	// "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

// TimeoutDuration returns the request timeout as a duration
func (a *APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Credentials are not resolved here; use LoadWithSecrets for that.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = v.GetString("CRM_API_BASE_URL")
	}
	if cfg.API.Token == "" {
		cfg.API.Token = v.GetString("CRM_API_TOKEN")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.baseUrl is required (or set CRM_API_BASE_URL)")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves the API token from the
// configured secret source. Key Vault is used only when USE_AZURE_KEY_VAULT
// is set and the environment is staging or production; otherwise the token
// comes from the environment.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault || !isValidEnv {
		if useKeyVault && !isValidEnv {
			logger.Warn("USE_AZURE_KEY_VAULT is set but environment is not staging or production, using environment variables",
				zap.String("environment", cfg.App.Environment),
			)
		}
		if cfg.API.Token == "" {
			return nil, fmt.Errorf("CRM_API_TOKEN is required")
		}
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	token, err := provider.GetSecretOrEnv(ctx, "crm-api-token", "CRM_API_TOKEN")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API token: %w", err)
	}
	cfg.API.Token = token

	logger.Info("API token resolved from Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Meridian Sales Cycle")
	v.SetDefault("app.environment", "development")

	// API defaults
	v.SetDefault("api.timeout", 30)

	// Store defaults
	v.SetDefault("store.path", "./salescycle.db")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
