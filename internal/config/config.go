package config

import (
	"fmt"
	"time"

	"github.com/yildizm/BetterRest/internal/bedtime"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Model    ModelConfig    `yaml:"model" json:"model"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// ModelConfig selects the regression artifact
type ModelConfig struct {
	Path  string `yaml:"path" json:"path"`   // empty means the built-in model
	Watch bool   `yaml:"watch" json:"watch"` // re-validate the artifact when it changes
}

// DefaultsConfig holds the values the form starts with
type DefaultsConfig struct {
	WakeTime     string  `yaml:"wake_time" json:"wake_time"`         // HH:MM
	SleepAmount  float64 `yaml:"sleep_amount" json:"sleep_amount"`   // hours, 4..8 in 0.25 steps
	CoffeeAmount int     `yaml:"coffee_amount" json:"coffee_amount"` // cups, 1..20
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	TimeFormat    string `yaml:"time_format" json:"time_format"`       // Go layout for the bedtime
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`
}

// LogConfig configures diagnostics
type LogConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	File    string `yaml:"file" json:"file"` // TUI log destination; empty discards
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			Path:  "",
			Watch: false,
		},
		Defaults: DefaultsConfig{
			WakeTime:     bedtime.DefaultWakeTime.String(),
			SleepAmount:  bedtime.DefaultSleepAmount,
			CoffeeAmount: bedtime.DefaultCoffeeAmount,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			TimeFormat:    bedtime.DefaultTimeLayout,
			Theme:         "default",
		},
	}
}

// Inputs converts the defaults section into form inputs
func (d DefaultsConfig) Inputs() (bedtime.Inputs, error) {
	wake, err := bedtime.ParseWakeTime(d.WakeTime)
	if err != nil {
		return bedtime.Inputs{}, err
	}
	in := bedtime.Inputs{
		Wake:         wake,
		SleepAmount:  d.SleepAmount,
		CoffeeAmount: d.CoffeeAmount,
	}
	if err := in.Validate(); err != nil {
		return bedtime.Inputs{}, err
	}
	return in, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateDefaults validates the form starting values
func (c *Config) validateDefaults() error {
	if _, err := c.Defaults.Inputs(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	if c.Output.TimeFormat != "" && !isTimeLayout(c.Output.TimeFormat) {
		return fmt.Errorf("invalid time format: %q (must be a Go time layout such as 15:04 or 3:04 PM)", c.Output.TimeFormat)
	}
	return nil
}

// isTimeLayout reports whether layout renders hours and minutes distinctly
func isTimeLayout(layout string) bool {
	a := time.Date(2000, 1, 1, 1, 2, 0, 0, time.UTC).Format(layout)
	b := time.Date(2000, 1, 1, 3, 2, 0, 0, time.UTC).Format(layout)
	c := time.Date(2000, 1, 1, 1, 5, 0, 0, time.UTC).Format(layout)
	return a != b && a != c
}
