package envconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIURL    = "EMQX_API_URL"
	EnvAPIKey    = "EMQX_API_KEY"
	EnvAPISecret = "EMQX_API_SECRET"
	EnvLogLevel  = "EMQX_MCP_LOG_LEVEL"
	EnvLogFormat = "EMQX_MCP_LOG_FORMAT"
	EnvConfig    = "EMQX_MCP_CONFIG"
)

// Config holds everything the server needs at startup.
type Config struct {
	// APIURL is the base URL of the EMQX management API,
	// e.g. "https://broker.example.com/api/v5".
	APIURL string `yaml:"api_url"`

	// APIKey and APISecret authenticate against the management API.
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// Default returns a Config with default values and no credentials.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds a Config from defaults, the YAML file at path (optional;
// falls back to EMQX_MCP_CONFIG when path is empty), and environment
// variables, in increasing precedence. Flag overrides are applied by the
// caller on top of the returned Config.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// loadFile merges values from a YAML config file into cfg. Fields absent
// from the file keep their current values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with environment variables that are set.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvAPISecret); v != "" {
		cfg.APISecret = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}

// Validate checks that all required credentials are present. The error
// names every missing variable so a misconfigured deployment can be
// fixed in one pass.
func (c Config) Validate() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, EnvAPIURL)
	}
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.APISecret == "" {
		missing = append(missing, EnvAPISecret)
	}
	if len(missing) > 0 {
		return fmt.Errorf(
			"missing required configuration: %s (set them in the environment or a config file)",
			strings.Join(missing, ", "))
	}
	return nil
}
