package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the Cloudflare v4 API root used when no override is set.
const DefaultAPIBaseURL = "https://api.cloudflare.com/client/v4"

// Config holds the Cloudflare credentials and addressing for one KV namespace.
// It is populated once at startup and read-only afterwards.
type Config struct {
	AccountID   string
	APIToken    string
	NamespaceID string
	APIBaseURL  string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads the configuration from the process environment. All three
// Cloudflare settings are required; every missing one is named in the
// returned error so a misconfigured deployment fails closed at startup.
func Load() (*Config, error) {
	var missing []string

	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	if accountID == "" {
		missing = append(missing, "CLOUDFLARE_ACCOUNT_ID")
	}

	apiToken := os.Getenv("CLOUDFLARE_API_TOKEN")
	if apiToken == "" {
		missing = append(missing, "CLOUDFLARE_API_TOKEN")
	}

	namespaceID := os.Getenv("CLOUDFLARE_KV_NAMESPACE_ID")
	if namespaceID == "" {
		missing = append(missing, "CLOUDFLARE_KV_NAMESPACE_ID")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	baseURL := os.Getenv("CLOUDFLARE_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	httpTimeout := 30 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			httpTimeout = d
		}
	}

	return &Config{
		AccountID:   accountID,
		APIToken:    apiToken,
		NamespaceID: namespaceID,
		APIBaseURL:  baseURL,
		LogLevel:    logLevel,
		HTTPTimeout: httpTimeout,
	}, nil
}

// SetupLogging installs the global slog logger with JSON output at the given
// level. Diagnostics go to stderr: stdout carries the MCP protocol stream.
func SetupLogging(level string) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}
