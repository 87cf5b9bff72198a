// Package config loads promptly settings from YAML with environment
// variable substitution.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pthm/promptly/internal/rules"
)

// EnvConfigPath names the environment variable that points at a config file
const EnvConfigPath = "PROMPTLY_CONFIG"

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all user-tunable settings
type Config struct {
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	RulesOnly       bool          `yaml:"rules_only"`
	Temperature     float64       `yaml:"temperature"`
	MaxTokens       int           `yaml:"max_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
	LogLevel        string        `yaml:"log_level"`
	DefaultIntent   string        `yaml:"default_intent"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`

	// Path is the file the config was read from, empty for defaults only
	Path string `yaml:"-"`
}

var envVarPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Loader handles configuration loading from YAML files
type Loader struct {
	lookupEnv func(string) (string, bool)
	home      string
	dotenv    bool
}

// NewLoader creates a loader reading the process environment. A .env file in
// the working directory is loaded first when present.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{lookupEnv: os.LookupEnv, home: home, dotenv: true}
}

// Load returns defaults overlaid with the first config file found: path, then
// $PROMPTLY_CONFIG, then ~/.config/promptly/config.yaml. An explicitly named
// file that does not exist is an error.
func (l *Loader) Load(path string) (*Config, error) {
	if l.dotenv {
		// A missing .env is not an error.
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(l.expandEnvVars(string(defaultsYAML))), cfg); err != nil {
		return nil, fmt.Errorf("parsing built-in defaults: %w", err)
	}

	filePath, err := l.resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(l.expandEnvVars(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
		}
		cfg.Path = filePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is a convenience wrapper around NewLoader().Load
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

func (l *Loader) resolveConfigPath(path string) (string, error) {
	if path == "" {
		path, _ = l.lookupEnv(EnvConfigPath)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}

	if l.home == "" {
		return "", nil
	}
	fallback := filepath.Join(l.home, ".config", "promptly", "config.yaml")
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}
	return "", nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} references
func (l *Loader) expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if val, ok := l.lookupEnv(submatches[1]); ok {
			return val
		}
		return submatches[2]
	})
}

var validProviders = map[string]bool{
	"anthropic":   true,
	"claude-code": true,
	"gemini":      true,
	"none":        true,
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var errs []error
	if !validProviders[c.Provider] {
		errs = append(errs, fmt.Errorf("provider must be one of anthropic, claude-code, gemini, none (got %q)", c.Provider))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2 (got %g)", c.Temperature))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive (got %d)", c.MaxTokens))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative (got %s)", c.Timeout))
	}
	if c.DefaultIntent != "" && c.Intent() == rules.IntentOther &&
		strings.ToLower(strings.TrimSpace(c.DefaultIntent)) != string(rules.IntentOther) {
		errs = append(errs, fmt.Errorf("default_intent %q is not a known intent", c.DefaultIntent))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Intent returns the configured default intent
func (c *Config) Intent() rules.Intent {
	return rules.ParseIntent(c.DefaultIntent)
}

// APIKey returns the key for the configured provider
func (c *Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return ""
	}
}
