package portal

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the portal server.
type Config struct {
	BindAddress   string
	Port          int
	BaseURL       string
	DataURL       string // hosted data service base URL
	DataAnonKey   string // public API key for the data service
	DataTimeout   time.Duration
	AdminKey      string // gates /metrics unless PublicMetrics
	PublicMetrics bool
	LogLevel      string
	LogFormat     string
	CookieName    string
	CookieSecure  bool
}

// LoadConfig loads portal configuration from environment variables.
// A .env file is loaded if present but not required.
func LoadConfig() (*Config, error) {
	// Best-effort .env loading (not required)
	_ = godotenv.Load()

	port, err := envOrDefaultInt("AIGENCY_PORT", 8080)
	if err != nil {
		return nil, err
	}
	dataTimeout, err := envOrDefaultInt("DATASERVICE_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BindAddress:   envOrDefault("AIGENCY_BIND_ADDRESS", "0.0.0.0"),
		Port:          port,
		BaseURL:       strings.TrimSpace(os.Getenv("AIGENCY_BASE_URL")),
		DataURL:       strings.TrimSpace(os.Getenv("DATASERVICE_URL")),
		DataAnonKey:   strings.TrimSpace(os.Getenv("DATASERVICE_ANON_KEY")),
		DataTimeout:   time.Duration(dataTimeout) * time.Second,
		AdminKey:      strings.TrimSpace(os.Getenv("AIGENCY_ADMIN_KEY")),
		PublicMetrics: envBool("AIGENCY_PUBLIC_METRICS"),
		LogLevel:      envOrDefault("AIGENCY_LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("AIGENCY_LOG_FORMAT", "auto"),
		CookieName:    envOrDefault("AIGENCY_SESSION_COOKIE", "aigency_session"),
		CookieSecure:  !envBool("AIGENCY_COOKIE_INSECURE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate portal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.DataURL == "" {
		missing = append(missing, "DATASERVICE_URL")
	}
	if c.DataAnonKey == "" {
		missing = append(missing, "DATASERVICE_ANON_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("AIGENCY_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DataTimeout <= 0 {
		return fmt.Errorf("DATASERVICE_TIMEOUT_SECONDS must be greater than 0")
	}

	if c.BaseURL != "" {
		parsed, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("AIGENCY_BASE_URL must be a valid URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("AIGENCY_BASE_URL must use http or https scheme")
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) (int, error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
		}
		return n, nil
	}
	return fallback, nil
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
