package config

import (
	"fmt"
	"os"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ServerName    string
	ServerVersion string

	// HTTPAddr selects the HTTP transport when non-empty; otherwise the
	// server speaks stdio.
	HTTPAddr string

	LogLevel string
	LogFile  string

	Salesforce Salesforce
}

// Salesforce holds the org connection settings for the OAuth
// username-password flow.
type Salesforce struct {
	LoginURL      string
	Username      string
	Password      string
	SecurityToken string
	ClientID      string
	ClientSecret  string
	APIVersion    string
}

// Load reads configuration from the environment, applying local-dev
// defaults where sane ones exist.
func Load() (*Config, error) {
	cfg := &Config{
		ServerName:    getEnv("MCP_SERVER_NAME", "mcp-salesforce"),
		ServerVersion: getEnv("MCP_SERVER_VERSION", "0.1.0"),
		HTTPAddr:      getEnv("MCP_HTTP_ADDR", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		Salesforce: Salesforce{
			LoginURL:      getEnv("SF_LOGIN_URL", "https://login.salesforce.com"),
			Username:      getEnv("SF_USERNAME", ""),
			Password:      getEnv("SF_PASSWORD", ""),
			SecurityToken: getEnv("SF_SECURITY_TOKEN", ""),
			ClientID:      getEnv("SF_CLIENT_ID", ""),
			ClientSecret:  getEnv("SF_CLIENT_SECRET", ""),
			APIVersion:    getEnv("SF_API_VERSION", "59.0"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	missing := []string{}
	if c.Salesforce.Username == "" {
		missing = append(missing, "SF_USERNAME")
	}
	if c.Salesforce.Password == "" {
		missing = append(missing, "SF_PASSWORD")
	}
	if c.Salesforce.ClientID == "" {
		missing = append(missing, "SF_CLIENT_ID")
	}
	if c.Salesforce.ClientSecret == "" {
		missing = append(missing, "SF_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
