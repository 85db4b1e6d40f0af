// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// TranslateConfig provides settings for the translation provider.
type TranslateConfig interface {
	GetTranslateAPIKey() string
	GetTranslateBaseURL() string
	IsTranslateEnabled() bool
}

// CRMConfig provides settings for the external CRM.
type CRMConfig interface {
	GetCRMAccessToken() string
	GetCRMBaseURL() string
	IsCRMEnabled() bool
}

// CalendlyConfig provides settings for the scheduling provider webhook.
type CalendlyConfig interface {
	GetCalendlyBaseURL() string
	GetCalendlyWebhookSigningKey() string
}

// WhatsAppConfig provides settings for WhatsApp deep-link generation.
type WhatsAppConfig interface {
	GetWhatsAppDefaultMessage() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                       string
	HTTPAddr                  string
	DatabaseURL               string
	JWTAccessSecret           string
	CORSAllowAll              bool
	CORSOrigins               []string
	CORSAllowCreds            bool
	TranslateAPIKey           string
	TranslateBaseURL          string
	CRMAccessToken            string
	CRMBaseURL                string
	CalendlyBaseURL           string
	CalendlyWebhookSigningKey string
	WhatsAppDefaultMessage    string
}

// Load reads configuration from environment variables.
// A .env file is loaded first when present (development convenience).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPAddr:                  getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		JWTAccessSecret:           os.Getenv("JWT_ACCESS_SECRET"),
		CORSAllowAll:              getEnvBool("CORS_ALLOW_ALL", false),
		CORSOrigins:               getEnvList("CORS_ORIGINS"),
		CORSAllowCreds:            getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		TranslateAPIKey:           os.Getenv("TRANSLATE_API_KEY"),
		TranslateBaseURL:          getEnv("TRANSLATE_BASE_URL", "https://translation.googleapis.com/language/translate/v2"),
		CRMAccessToken:            os.Getenv("CRM_ACCESS_TOKEN"),
		CRMBaseURL:                getEnv("CRM_BASE_URL", "https://api.hubapi.com"),
		CalendlyBaseURL:           getEnv("CALENDLY_BASE_URL", "https://api.calendly.com"),
		CalendlyWebhookSigningKey: os.Getenv("CALENDLY_WEBHOOK_SIGNING_KEY"),
		WhatsAppDefaultMessage:    getEnv("WHATSAPP_DEFAULT_MESSAGE", "Hello! Thank you for your interest. How can we help you?"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string     { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }
func (c *Config) GetHTTPAddr() string        { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool      { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string   { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool    { return c.CORSAllowCreds }

func (c *Config) GetTranslateAPIKey() string  { return c.TranslateAPIKey }
func (c *Config) GetTranslateBaseURL() string { return c.TranslateBaseURL }
func (c *Config) IsTranslateEnabled() bool    { return c.TranslateAPIKey != "" }

func (c *Config) GetCRMAccessToken() string { return c.CRMAccessToken }
func (c *Config) GetCRMBaseURL() string     { return c.CRMBaseURL }
func (c *Config) IsCRMEnabled() bool        { return c.CRMAccessToken != "" }

func (c *Config) GetCalendlyBaseURL() string           { return c.CalendlyBaseURL }
func (c *Config) GetCalendlyWebhookSigningKey() string { return c.CalendlyWebhookSigningKey }

func (c *Config) GetWhatsAppDefaultMessage() string { return c.WhatsAppDefaultMessage }
