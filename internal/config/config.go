// ABOUTME: Centralized configuration for the actionbrief web app and CLI
// ABOUTME: Loads defaults, an optional YAML file, then environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // event timezone must resolve in minimal containers

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for actionbrief
type Config struct {
	// Web app settings
	SecretKey      string        `yaml:"secret_key"`
	AdminUsername  string        `yaml:"admin_username"`
	AdminPassword  string        `yaml:"admin_password"`
	RecipientEmail string        `yaml:"recipient_email"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	SecureCookies  bool          `yaml:"secure_cookies"`

	// Summarization model settings
	OpenAIKey      string        `yaml:"openai_api_key"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	SummaryModel   string        `yaml:"summary_model"`
	SummaryTimeout time.Duration `yaml:"summary_timeout"`
	ChunkTokens    int           `yaml:"chunk_tokens"`

	// Local files
	DataDir         string `yaml:"data_dir"`
	DatabasePath    string `yaml:"database_path"`
	TokenFile       string `yaml:"token_file"`
	CredentialsFile string `yaml:"credentials_file"`

	// Calendar settings
	EventTimezone string `yaml:"event_timezone"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config populated with default values only
func Defaults() *Config {
	return &Config{
		AdminUsername:   "admin",
		AdminPassword:   "password",
		SessionTTL:      time.Hour,
		SummaryModel:    "gpt-4o-mini",
		SummaryTimeout:  120 * time.Second,
		ChunkTokens:     1000,
		DataDir:         DefaultDataDir(),
		TokenFile:       "token.json",
		CredentialsFile: "credentials.json",
		EventTimezone:   "America/Chicago",
		LogLevel:        "info",
	}
}

// DefaultDataDir returns the XDG data directory used for the log database
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "actionbrief")
}

// Load builds the configuration. If path is non-empty the YAML file is read
// first; environment variables always take precedence over the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "app_logs.db")
	}

	return cfg, cfg.Validate()
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), c); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// FLASK_SECRET_KEY keeps existing .env files working
	c.SecretKey = getEnv("FLASK_SECRET_KEY", c.SecretKey)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.AdminUsername = getEnv("ADMIN_USERNAME", c.AdminUsername)
	c.AdminPassword = getEnv("ADMIN_PASSWORD", c.AdminPassword)
	c.RecipientEmail = getEnv("RECIPIENT_EMAIL", c.RecipientEmail)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.SecureCookies = getEnvBool("SECURE_COOKIES", c.SecureCookies)

	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.SummaryModel = getEnv("SUMMARY_MODEL", c.SummaryModel)
	c.SummaryTimeout = getEnvDuration("SUMMARY_TIMEOUT", c.SummaryTimeout)
	c.ChunkTokens = getEnvInt("CHUNK_TOKENS", c.ChunkTokens)

	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.TokenFile = getEnv("TOKEN_FILE", c.TokenFile)
	c.CredentialsFile = getEnv("CREDENTIALS_FILE", c.CredentialsFile)

	c.EventTimezone = getEnv("EVENT_TIMEZONE", c.EventTimezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func (c *Config) Validate() error {
	if c.ChunkTokens <= 0 {
		return fmt.Errorf("CHUNK_TOKENS must be positive, got %d", c.ChunkTokens)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	if _, err := time.LoadLocation(c.EventTimezone); err != nil {
		return fmt.Errorf("EVENT_TIMEZONE %q is not a known timezone: %w", c.EventTimezone, err)
	}
	return nil
}

// Location returns the event timezone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.EventTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
