// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the backend address used when nothing else is configured.
const DefaultAPIBaseURL = "http://localhost:8000"

// Config represents the CLI configuration that can be loaded from a JSON or YAML file
// and overridden by environment variables and flags.
type Config struct {
	// Backend
	APIBaseURL string        `mapstructure:"api_base_url"` // Backend base URL
	Timeout    time.Duration `mapstructure:"timeout"`      // Per-request timeout; 0 keeps the transport default
	Strict     bool          `mapstructure:"strict"`       // Validate responses against the embedded JSON schemas

	// Wizard
	StepValidation bool `mapstructure:"step_validation"` // Gate wizard steps on required answers

	// Defaults for one-shot commands
	TopN                int    `mapstructure:"top_n"`                // Job recommendations to request
	InterviewRole       string `mapstructure:"interview_role"`       // Default mock-interview role
	InterviewDifficulty string `mapstructure:"interview_difficulty"` // easy, medium or hard
	InterviewQuestions  int    `mapstructure:"interview_questions"`  // Number of interview questions

	// Behavior
	Verbose bool `mapstructure:"verbose"` // Print diagnostic logs
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL:          DefaultAPIBaseURL,
		StepValidation:      true,
		TopN:                5,
		InterviewRole:       "Software Engineer",
		InterviewDifficulty: "medium",
		InterviewQuestions:  5,
	}
}

// Load builds the effective configuration: built-in defaults, then the optional file,
// then environment variables (COUNSELLOR_* and API_BASE_URL).
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("api_base_url", defaults.APIBaseURL)
	v.SetDefault("step_validation", defaults.StepValidation)
	v.SetDefault("top_n", defaults.TopN)
	v.SetDefault("interview_role", defaults.InterviewRole)
	v.SetDefault("interview_difficulty", defaults.InterviewDifficulty)
	v.SetDefault("interview_questions", defaults.InterviewQuestions)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("strict", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("COUNSELLOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The web client read VITE_API_BASE_URL; accept the plain name too.
	if err := v.BindEnv("api_base_url", "COUNSELLOR_API_BASE_URL", "API_BASE_URL", "VITE_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfigFile reads a JSON or YAML file into v, telling a missing file apart
// from one that does not parse.
func readConfigFile(v *viper.Viper, path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'api_base_url' must be an absolute URL, got %q", c.APIBaseURL)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("config error: 'api_base_url' scheme must be http or https")
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.TopN < 0 || c.TopN > 20 {
		return fmt.Errorf("config error: 'top_n' must be between 1 and 20")
	}
	if c.InterviewQuestions < 0 || c.InterviewQuestions > 20 {
		return fmt.Errorf("config error: 'interview_questions' must be between 1 and 20")
	}

	switch c.InterviewDifficulty {
	case "", "easy", "medium", "hard":
	default:
		return fmt.Errorf("config error: 'interview_difficulty' must be easy, medium or hard")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.InterviewRole == "" {
		result.InterviewRole = defaults.InterviewRole
	}
	if result.InterviewDifficulty == "" {
		result.InterviewDifficulty = defaults.InterviewDifficulty
	}

	// Numeric fields: use default if zero
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.InterviewQuestions == 0 {
		result.InterviewQuestions = defaults.InterviewQuestions
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
