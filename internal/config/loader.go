package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.betterrest.yaml",               // Project-specific config (highest priority)
	"~/.config/betterrest/config.yaml", // User config
	"/etc/betterrest/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "BETTERREST_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.betterrest.yaml
// 4. ~/.config/betterrest/config.yaml
// 5. /etc/betterrest/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Model Config
		"BETTERREST_MODEL_PATH":  func(v string) error { config.Model.Path = v; return nil },
		"BETTERREST_MODEL_WATCH": func(v string) error { return parseBool(v, &config.Model.Watch) },

		// Defaults Config
		"BETTERREST_DEFAULTS_WAKE_TIME":     func(v string) error { config.Defaults.WakeTime = v; return nil },
		"BETTERREST_DEFAULTS_SLEEP_AMOUNT":  func(v string) error { return parseFloat(v, &config.Defaults.SleepAmount) },
		"BETTERREST_DEFAULTS_COFFEE_AMOUNT": func(v string) error { return parseInt(v, &config.Defaults.CoffeeAmount) },

		// Output Config
		"BETTERREST_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"BETTERREST_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"BETTERREST_OUTPUT_TIME_FORMAT":    func(v string) error { config.Output.TimeFormat = v; return nil },
		"BETTERREST_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		"BETTERREST_OUTPUT_NO_EMOJI":       func(v string) error { return parseBool(v, &config.Output.NoEmoji) },

		// Log Config
		"BETTERREST_LOG_VERBOSE": func(v string) error { return parseBool(v, &config.Log.Verbose) },
		"BETTERREST_LOG_FILE":    func(v string) error { config.Log.File = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandPath expands ~ in user-supplied paths such as model.path
func ExpandPath(path string) string {
	return expandPath(path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeModelConfig(&dst.Model, &src.Model)
	mergeDefaultsConfig(&dst.Defaults, &src.Defaults)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeLogConfig(&dst.Log, &src.Log)
}

func mergeModelConfig(dst, src *ModelConfig) {
	if src.Path != "" {
		dst.Path = src.Path
	}
	mergeIfTrue(&dst.Watch, src.Watch)
}

func mergeDefaultsConfig(dst, src *DefaultsConfig) {
	if src.WakeTime != "" {
		dst.WakeTime = src.WakeTime
	}
	if src.SleepAmount != 0 {
		dst.SleepAmount = src.SleepAmount
	}
	if src.CoffeeAmount != 0 {
		dst.CoffeeAmount = src.CoffeeAmount
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.TimeFormat != "" {
		dst.TimeFormat = src.TimeFormat
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	mergeIfTrue(&dst.NoEmoji, src.NoEmoji)
}

func mergeLogConfig(dst, src *LogConfig) {
	if src.File != "" {
		dst.File = src.File
	}
	mergeIfTrue(&dst.Verbose, src.Verbose)
}

// mergeIfTrue lets a file switch a flag on; every flag defaults to off,
// and env overrides can still switch it back.
func mergeIfTrue(dst *bool, src bool) {
	if src {
		*dst = true
	}
}

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
