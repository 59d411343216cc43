package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/config"
	"github.com/yildizm/BetterRest/internal/emoji"
	"github.com/yildizm/BetterRest/internal/formatter"
)

// fixedSleepArtifact always predicts 7.5 hours of actual sleep
const fixedSleepArtifact = `name: Fixed
version: "1"
output: actualSleep
unit: hours
intercept: 7.5
coefficients:
  wake: 0
  estimatedSleep: 0
  coffee: 0
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer emoji.SetEmojiDisabled(false)

	var out, errOut bytes.Buffer
	cmd := NewRootCommand("1.2.3", "abc123", "2024-01-01")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-emoji"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "BetterRest 1.2.3 (abc123) built on 2024-01-01") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestEstimateCommand(t *testing.T) {
	model := writeFile(t, "fixed.yaml", fixedSleepArtifact)

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "text output",
			args:     []string{"estimate", "--model", model},
			contains: []string{bedtime.SuccessTitle, "23:30", "Wake time: 07:00", "8 hours", "1 cup", "7h 30m"},
		},
		{
			name:     "custom inputs",
			args:     []string{"estimate", "--model", model, "--wake", "06:15", "--sleep", "6.5", "--coffee", "4"},
			contains: []string{"22:45", "Wake time: 06:15", "6.5 hours", "4 cups"},
		},
		{
			name:     "markdown output",
			args:     []string{"estimate", "--model", model, "-o", "markdown"},
			contains: []string{"**23:30", "| Wake time |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("estimate failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestEstimateCommandJSON(t *testing.T) {
	out, err := executeCommand(t, "estimate", "-o", "json", "--wake", "07:00")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	var res formatter.ResultOutput
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !res.OK {
		t.Error("expected the built-in model to succeed")
	}
	if res.Title != bedtime.SuccessTitle {
		t.Errorf("title = %q, want %q", res.Title, bedtime.SuccessTitle)
	}
	if res.Bedtime == "" || res.Inputs == nil || res.Inputs.WakeTime != "07:00" {
		t.Errorf("incomplete result: %+v", res)
	}
}

func TestEstimateCommandInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"sleep below range", []string{"--sleep", "3.75"}},
		{"sleep above range", []string{"--sleep", "8.25"}},
		{"sleep off step", []string{"--sleep", "7.1"}},
		{"coffee below range", []string{"--coffee", "0"}},
		{"coffee above range", []string{"--coffee", "21"}},
		{"bad wake time", []string{"--wake", "25:00"}},
		{"unparsable wake time", []string{"--wake", "seven"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, append([]string{"estimate"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, errCalculationFailed) {
				t.Error("invalid inputs should fail before the calculation")
			}
		})
	}
}

func TestEstimateCommandPredictionFailure(t *testing.T) {
	broken := writeFile(t, "broken.yaml", "name: [unterminated")

	out, err := executeCommand(t, "estimate", "--model", broken)
	if !errors.Is(err, errCalculationFailed) {
		t.Fatalf("expected errCalculationFailed, got %v", err)
	}
	if !strings.Contains(out, bedtime.ErrorTitle) || !strings.Contains(out, bedtime.ErrorMessage) {
		t.Errorf("output should carry the fixed error alert:\n%s", out)
	}
}

func TestEstimateCommandUnknownFormat(t *testing.T) {
	_, err := executeCommand(t, "estimate", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestEstimateUsesConfigDefaults(t *testing.T) {
	model := writeFile(t, "fixed.yaml", fixedSleepArtifact)
	cfg := writeFile(t, "config.yaml", `defaults:
  wake_time: "09:00"
  sleep_amount: 6
  coffee_amount: 2
output:
  time_format: "3:04 PM"
`)

	out, err := executeCommand(t, "--config", cfg, "estimate", "--model", model)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	for _, want := range []string{"1:30 AM", "Wake time: 09:00", "6 hours", "2 cups"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestModelShowCommand(t *testing.T) {
	out, err := executeCommand(t, "model", "show")
	if err != nil {
		t.Fatalf("model show failed: %v", err)
	}
	for _, want := range []string{"SleepCalculator", "Source: embedded", "Coefficients", "estimatedSleep", "[MODEL]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestModelShowCommandJSON(t *testing.T) {
	model := writeFile(t, "fixed.yaml", fixedSleepArtifact)

	out, err := executeCommand(t, "model", "show", "--model", model, "-o", "json")
	if err != nil {
		t.Fatalf("model show failed: %v", err)
	}

	var m struct {
		Name      string  `json:"name"`
		Intercept float64 `json:"intercept"`
	}
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if m.Name != "Fixed" || m.Intercept != 7.5 {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestModelValidateCommand(t *testing.T) {
	valid := writeFile(t, "fixed.yaml", fixedSleepArtifact)
	invalid := writeFile(t, "bad.yaml", strings.Replace(fixedSleepArtifact, "unit: hours", "unit: minutes", 1))

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{"built-in", []string{}, false, "[OK]"},
		{"valid file", []string{"--model", valid}, false, "model Fixed 1 is valid"},
		{"invalid unit", []string{"--model", invalid}, true, "[ERR]"},
		{"wrong extension", []string{"--model", "model.txt"}, true, "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append([]string{"model", "validate"}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestModelValidateWatchNeedsFile(t *testing.T) {
	_, err := executeCommand(t, "model", "validate", "--watch")
	if err == nil || !strings.Contains(err.Error(), "needs a model file") {
		t.Errorf("expected watch without a file to fail, got %v", err)
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeCommand(t, "config", "init", "--output", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Configuration file created at") {
		t.Errorf("unexpected output: %q", out)
	}

	// The generated file must load cleanly
	if _, err := config.NewLoader().LoadConfig(path); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}

	if _, err := executeCommand(t, "config", "init", "--output", path); err == nil {
		t.Error("expected an error when the file exists")
	}
	if _, err := executeCommand(t, "config", "init", "--output", path, "--minimal", "--force"); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "output:\n  theme: minimal\n")

	out, err := executeCommand(t, "--config", cfg, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var loaded config.Config
	if err := json.Unmarshal([]byte(out), &loaded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if loaded.Output.Theme != "minimal" {
		t.Errorf("theme = %q, want minimal", loaded.Output.Theme)
	}
	if loaded.Defaults.WakeTime != "07:00" {
		t.Errorf("defaults should be filled in, got wake %q", loaded.Defaults.WakeTime)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	valid := writeFile(t, "valid.yaml", "defaults:\n  coffee_amount: 3\n")
	invalid := writeFile(t, "invalid.yaml", "defaults:\n  sleep_amount: 9\n")

	out, err := executeCommand(t, "--config", valid, "config", "validate")
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, "3 cups") {
		t.Errorf("unexpected output: %q", out)
	}

	out, err = executeCommand(t, "--config", invalid, "config", "validate")
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
	if !strings.Contains(out, "validation failed") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		noColor  bool
		expected bool
	}{
		{"always", "always", false, true},
		{"never", "never", false, false},
		{"auto on a buffer", "auto", false, false},
		{"no-color flag wins", "always", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldNoColor := noColor
			oldEnv, hadEnv := os.LookupEnv("NO_COLOR")
			noColor = tt.noColor
			os.Unsetenv("NO_COLOR")
			defer func() {
				noColor = oldNoColor
				if hadEnv {
					os.Setenv("NO_COLOR", oldEnv)
				}
			}()

			cfg := config.DefaultConfig()
			cfg.Output.ColorMode = tt.mode
			if got := colorEnabled(cfg, &bytes.Buffer{}); got != tt.expected {
				t.Errorf("colorEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestModelTreeFollowsConfigNoEmoji(t *testing.T) {
	defer emoji.SetEmojiDisabled(false)
	emoji.SetEmojiDisabled(false)

	oldCfgFile, oldNoEmoji := cfgFile, noEmoji
	defer func() { cfgFile, noEmoji = oldCfgFile, oldNoEmoji }()

	cfgFile = writeFile(t, "config.yaml", "output:\n  no_emoji: true\n")
	noEmoji = false

	if _, err := loadConfig(); err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if treeOptions(false).Emoji {
		t.Error("Expected output.no_emoji to disable emoji in the model tree")
	}
}
