package pyhdl

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the pyhdl configuration
type Config struct {
	// Receiver overrides the receiver parameter name. Empty means the first parameter.
	Receiver string       `yaml:"receiver"`
	Input    InputConfig  `yaml:"input"`
	Output   OutputConfig `yaml:"output"`
	Log      LogConfig    `yaml:"log"`
}

// InputConfig represents how parsed trees are read
type InputConfig struct {
	Format string `yaml:"format"` // auto, yaml, json, markdown
}

// OutputConfig represents how normalized trees are written
type OutputConfig struct {
	Format    string `yaml:"format"` // text, yaml, xml
	Positions bool   `yaml:"positions"`
	Path      string `yaml:"path"` // empty means stdout
}

// LogConfig represents logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

// parseConfig decodes YAML in strict mode so unknown keys are reported.
func parseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validInputs := map[string]bool{
		"auto":     true,
		"yaml":     true,
		"json":     true,
		"markdown": true,
	}
	if !validInputs[config.Input.Format] {
		return fmt.Errorf("%w: input.format '%s' is invalid: must be one of auto, yaml, json, markdown", ErrConfigValidation, config.Input.Format)
	}

	validOutputs := map[string]bool{
		"text": true,
		"yaml": true,
		"xml":  true,
	}
	if !validOutputs[config.Output.Format] {
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of text, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("%w: log.level '%s' is invalid: must be one of debug, info, warn, error", ErrConfigValidation, config.Log.Level)
	}

	if config.Receiver != "" && !identifierPattern.MatchString(config.Receiver) {
		return fmt.Errorf("%w: receiver '%s' is not a valid identifier", ErrConfigValidation, config.Receiver)
	}

	return nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: "auto",
		},
		Output: OutputConfig{
			Format:    "text",
			Positions: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Input.Format == "" {
		config.Input.Format = defaults.Input.Format
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}

	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Receiver = expandEnvVars(config.Receiver)
	config.Output.Path = expandEnvVars(config.Output.Path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
