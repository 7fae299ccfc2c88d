package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	SiteURL     string // Public origin; when empty the callback URL is derived from the request
	ContentPath string
	MediaDir    string // Uploaded images served under /images
	// OAuth (GitHub, used by the CMS login)
	OAuthClientID     string `validate:"required"`
	OAuthClientSecret string `validate:"required"`
	OAuthStateSecret  string
	OAuthAuthorizeURL string `validate:"required,url"`
	OAuthTokenURL     string `validate:"required,url"`
	OAuthScope        string
	CMSAllowedOrigins []string
	// SMTP Configuration
	SMTPHost     string `validate:"required"`
	SMTPPort     int    `validate:"required,min=1,max=65535"`
	SMTPUsername string `validate:"required"`
	SMTPPassword string `validate:"required"`
	SMTPTo       string `validate:"required,email"`
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int `validate:"min=1"`
	RateLimitContactThreshold int `validate:"min=1"`
	RateLimitAuthThreshold    int `validate:"min=1"`
	OutboundTimeoutSeconds    int `validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	// Only effective locally; in production the variables come from the platform
	_ = godotenv.Load()

	smtpUser := getEnv("SMTP_USER", "")
	smtpPort := getEnvInt("SMTP_PORT", 587)
	if smtpPort <= 0 {
		smtpPort = 587
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		SiteURL:     strings.TrimRight(getEnv("SITE_URL", ""), "/"),
		ContentPath: getEnv("CONTENT_PATH", "content/site.yaml"),
		MediaDir:    getEnv("MEDIA_DIR", "public/images"),
		// OAuth
		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		OAuthStateSecret:  getEnv("OAUTH_STATE_SECRET", ""),
		OAuthAuthorizeURL: getEnv("OAUTH_AUTHORIZE_URL", "https://github.com/login/oauth/authorize"),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", "https://github.com/login/oauth/access_token"),
		OAuthScope:        getEnv("OAUTH_SCOPE", "repo,user"),
		CMSAllowedOrigins: getEnvList("CMS_ALLOWED_ORIGINS"),
		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     smtpPort,
		SMTPUsername: smtpUser,
		SMTPPassword: getEnv("SMTP_PASS", ""),
		SMTPTo:       getEnv("SMTP_TO", smtpUser), // Owner inbox, defaults to the login account
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitAuthThreshold:    getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 20),
		OutboundTimeoutSeconds:    getEnvInt("OUTBOUND_TIMEOUT_SECONDS", 15),
	}

	if cfg.OAuthStateSecret == "" {
		cfg.OAuthStateSecret = cfg.OAuthClientSecret
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and OAuth state will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate checks every required setting once, at process start.
// The returned error lists each missing or malformed variable.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s (%s)", envName(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

var envNames = map[string]string{
	"OAuthClientID":             "OAUTH_CLIENT_ID",
	"OAuthClientSecret":         "OAUTH_CLIENT_SECRET",
	"OAuthAuthorizeURL":         "OAUTH_AUTHORIZE_URL",
	"OAuthTokenURL":             "OAUTH_TOKEN_URL",
	"SMTPHost":                  "SMTP_HOST",
	"SMTPPort":                  "SMTP_PORT",
	"SMTPUsername":              "SMTP_USER",
	"SMTPPassword":              "SMTP_PASS",
	"SMTPTo":                    "SMTP_TO",
	"RateLimitWindowSeconds":    "RATE_LIMIT_WINDOW_SECONDS",
	"RateLimitContactThreshold": "RATE_LIMIT_CONTACT_THRESHOLD",
	"RateLimitAuthThreshold":    "RATE_LIMIT_AUTH_THRESHOLD",
	"OutboundTimeoutSeconds":    "OUTBOUND_TIMEOUT_SECONDS",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
