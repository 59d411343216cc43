package predict

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feature names as they appear in the model artifact
const (
	FeatureWake           = "wake"
	FeatureEstimatedSleep = "estimatedSleep"
	FeatureCoffee         = "coffee"
)

// Output units supported by the artifact
const (
	UnitHours   = "hours"
	UnitSeconds = "seconds"
)

// outputName is the only target the form knows how to use
const outputName = "actualSleep"

// MaxActualSleepHours bounds a usable prediction
const MaxActualSleepHours = 24.0

var requiredFeatures = []string{FeatureWake, FeatureEstimatedSleep, FeatureCoffee}

// Model is a linear regression artifact
type Model struct {
	Name         string             `yaml:"name" json:"name"`
	Version      string             `yaml:"version" json:"version"`
	Description  string             `yaml:"description,omitempty" json:"description,omitempty"`
	Output       string             `yaml:"output" json:"output"`
	Unit         string             `yaml:"unit" json:"unit"`
	Intercept    float64            `yaml:"intercept" json:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients" json:"coefficients"`
}

// ParseModel decodes and validates a YAML (or JSON) model artifact
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the artifact can be evaluated
func (m *Model) Validate() error {
	if m.Output != outputName {
		return fmt.Errorf("unsupported model output: %q (must be %s)", m.Output, outputName)
	}

	switch m.Unit {
	case UnitHours, UnitSeconds:
	default:
		return fmt.Errorf("invalid model unit: %q (must be one of: hours, seconds)", m.Unit)
	}

	if !isFinite(m.Intercept) {
		return fmt.Errorf("intercept must be finite")
	}

	var missing []string
	for _, name := range requiredFeatures {
		if _, ok := m.Coefficients[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing coefficients: %s", strings.Join(missing, ", "))
	}

	for _, name := range m.FeatureNames() {
		if !isRequiredFeature(name) {
			return fmt.Errorf("unknown feature: %s", name)
		}
		if !isFinite(m.Coefficients[name]) {
			return fmt.Errorf("coefficient for %s must be finite", name)
		}
	}

	return nil
}

// FeatureNames returns the artifact's feature names in sorted order
func (m *Model) FeatureNames() []string {
	names := make([]string, 0, len(m.Coefficients))
	for name := range m.Coefficients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate returns the raw regression output in the artifact's unit
func (m *Model) Evaluate(wake, estimatedSleep, coffee float64) float64 {
	return m.Intercept +
		m.Coefficients[FeatureWake]*wake +
		m.Coefficients[FeatureEstimatedSleep]*estimatedSleep +
		m.Coefficients[FeatureCoffee]*coffee
}

// PredictSleep evaluates the model and converts the result to hours
func (m *Model) PredictSleep(wake, estimatedSleep, coffee float64) (float64, error) {
	raw := m.Evaluate(wake, estimatedSleep, coffee)

	hours := raw
	if m.Unit == UnitSeconds {
		hours = raw / 3600
	}

	if !isFinite(hours) {
		return 0, NewEvaluateError(m.Name, "model produced a non-finite value", nil)
	}
	if hours <= 0 || hours > MaxActualSleepHours {
		return 0, NewEvaluateError(m.Name, fmt.Sprintf("predicted sleep out of range: %.2fh", hours), nil)
	}

	return hours, nil
}

func isRequiredFeature(name string) bool {
	for _, f := range requiredFeatures {
		if f == name {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
