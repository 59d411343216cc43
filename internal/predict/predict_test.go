package predict

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/BetterRest/internal/logger"
)

const validArtifact = `name: TestModel
version: "2"
output: actualSleep
unit: hours
intercept: 1.0
coefficients:
  wake: 0.0
  estimatedSleep: 0.5
  coffee: -0.25
`

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}
	return path
}

func TestEmbeddedModel(t *testing.T) {
	loader := Embedded()

	model, err := loader.Load()
	if err != nil {
		t.Fatalf("Embedded model failed to load: %v", err)
	}
	if model.Name != "SleepCalculator" {
		t.Errorf("Expected model name SleepCalculator, got %s", model.Name)
	}
	if loader.Source() != EmbeddedSource {
		t.Errorf("Expected source %s, got %s", EmbeddedSource, loader.Source())
	}

	// Every input the form can produce must yield a usable prediction
	for wake := 0; wake < 24*3600; wake += 1800 {
		for sleep := 4.0; sleep <= 8.0; sleep += 0.25 {
			for coffee := 1; coffee <= 20; coffee++ {
				hours, err := loader.PredictSleep(float64(wake), sleep, float64(coffee))
				if err != nil {
					t.Fatalf("PredictSleep(%d, %.2f, %d) failed: %v", wake, sleep, coffee, err)
				}
				if hours <= 0 || hours > 24 {
					t.Fatalf("PredictSleep(%d, %.2f, %d) = %.3f out of range", wake, sleep, coffee, hours)
				}
			}
		}
	}
}

func TestEmbeddedModelCoffeeReducesSleep(t *testing.T) {
	loader := Embedded()

	one, err := loader.PredictSleep(7*3600, 8, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ten, err := loader.PredictSleep(7*3600, 8, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ten >= one {
		t.Errorf("Expected more coffee to predict less sleep, got %.3f (1 cup) vs %.3f (10 cups)", one, ten)
	}
	if one >= 8 {
		t.Errorf("Expected actual sleep below desired 8h, got %.3f", one)
	}
}

func TestFileModel(t *testing.T) {
	path := writeArtifact(t, "model.yaml", validArtifact)

	hours, err := File(path).PredictSleep(25200, 8, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(hours-4.5) > 1e-9 {
		t.Errorf("Expected 4.5 hours, got %f", hours)
	}
}

func TestSecondsUnit(t *testing.T) {
	artifact := strings.Replace(validArtifact, "unit: hours", "unit: seconds", 1)
	artifact = strings.Replace(artifact, "intercept: 1.0", "intercept: 27000", 1)
	artifact = strings.Replace(artifact, "estimatedSleep: 0.5", "estimatedSleep: 0", 1)
	artifact = strings.Replace(artifact, "coffee: -0.25", "coffee: 0", 1)
	path := writeArtifact(t, "seconds.yml", artifact)

	hours, err := File(path).PredictSleep(25200, 8, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hours != 7.5 {
		t.Errorf("Expected 7.5 hours, got %f", hours)
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{
			name:    "corrupt yaml",
			file:    "corrupt.yaml",
			content: "name: [unterminated",
			errMsg:  "failed to parse model artifact",
		},
		{
			name:    "wrong output",
			file:    "output.yaml",
			content: strings.Replace(validArtifact, "output: actualSleep", "output: bedtime", 1),
			errMsg:  "unsupported model output",
		},
		{
			name:    "bad unit",
			file:    "unit.yaml",
			content: strings.Replace(validArtifact, "unit: hours", "unit: minutes", 1),
			errMsg:  "invalid model unit",
		},
		{
			name:    "missing coefficient",
			file:    "missing.yaml",
			content: strings.Replace(validArtifact, "  coffee: -0.25\n", "", 1),
			errMsg:  "missing coefficients: coffee",
		},
		{
			name:    "unknown feature",
			file:    "unknown.yaml",
			content: validArtifact + "  naps: 1.0\n",
			errMsg:  "unknown feature: naps",
		},
		{
			name:    "wrong extension",
			file:    "model.txt",
			content: validArtifact,
			errMsg:  "must have .yaml, .yml or .json extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.file, tt.content)

			_, err := File(path).PredictSleep(25200, 8, 1)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !errors.Is(err, ErrPredictionUnavailable) {
				t.Errorf("Expected ErrPredictionUnavailable, got %v", err)
			}
			if KindOf(err) != KindLoad {
				t.Errorf("Expected kind %s, got %s", KindLoad, KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := File(path).PredictSleep(25200, 8, 1)
	if !errors.Is(err, ErrPredictionUnavailable) {
		t.Fatalf("Expected ErrPredictionUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected cause to be os.ErrNotExist, got %v", err)
	}
}

func TestEvaluationFailures(t *testing.T) {
	tests := []struct {
		name      string
		intercept string
	}{
		{name: "negative prediction", intercept: "-20"},
		{name: "zero prediction", intercept: "-3"},
		{name: "over a day", intercept: "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := strings.Replace(validArtifact, "intercept: 1.0", "intercept: "+tt.intercept, 1)
			path := writeArtifact(t, "eval.yaml", artifact)

			// 0.5*8 - 0.25*4 = 3, so intercept -3 gives exactly zero
			_, err := File(path).PredictSleep(0, 8, 4)
			if !errors.Is(err, ErrPredictionUnavailable) {
				t.Fatalf("Expected ErrPredictionUnavailable, got %v", err)
			}
			if KindOf(err) != KindEvaluate {
				t.Errorf("Expected kind %s, got %s", KindEvaluate, KindOf(err))
			}

			var pe *Error
			if errors.As(err, &pe) && pe.Source != path {
				t.Errorf("Expected source %s, got %s", path, pe.Source)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	if src := FromPath("").Source(); src != EmbeddedSource {
		t.Errorf("Expected embedded source for empty path, got %s", src)
	}
	if src := FromPath("model.yaml").Source(); src != "model.yaml" {
		t.Errorf("Expected model.yaml source, got %s", src)
	}
}

func TestStubPredictors(t *testing.T) {
	hours, err := Fixed(7.5).PredictSleep(0, 0, 0)
	if err != nil || hours != 7.5 {
		t.Errorf("Fixed(7.5) = %f, %v", hours, err)
	}

	cause := errors.New("artifact missing")
	_, err = Failing(cause).PredictSleep(0, 0, 0)
	if !errors.Is(err, ErrPredictionUnavailable) {
		t.Errorf("Expected ErrPredictionUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected cause to be preserved, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	if Unavailable(nil) != nil {
		t.Error("Expected nil for nil error")
	}

	plain := errors.New("boom")
	wrapped := Unavailable(plain)
	if !errors.Is(wrapped, ErrPredictionUnavailable) {
		t.Errorf("Expected wrapped error to match ErrPredictionUnavailable")
	}
	if !errors.Is(wrapped, plain) {
		t.Errorf("Expected wrapped error to keep its cause")
	}

	already := NewLoadError("x", "gone", nil)
	if Unavailable(already) != error(already) {
		t.Errorf("Expected prediction errors to pass through unchanged")
	}
}

func TestErrorString(t *testing.T) {
	err := NewLoadError("model.yaml", "failed to read model artifact", errors.New("no such file"))
	want := "kind=load: source=model.yaml: failed to read model artifact: cause=no such file"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestFileAcceptsUserChosenPaths(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	if err := os.Mkdir(work, 0o750); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	for _, name := range []string{"sleep.yaml", "my..model.yaml"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(validArtifact), 0o600); err != nil {
			t.Fatalf("Failed to write artifact: %v", err)
		}
	}
	t.Chdir(work)

	tests := []string{
		"../sleep.yaml",
		"../my..model.yaml",
		filepath.Join(root, "my..model.yaml"),
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if _, err := File(path).Load(); err != nil {
				t.Errorf("Expected %s to load, got %v", path, err)
			}
		})
	}
}

func TestLoaderLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithCallback("predict", func() bool { return true }).WithWriter(&buf)

	if _, err := Embedded().WithLogger(log).Load(); err != nil {
		t.Fatalf("Embedded model failed to load: %v", err)
	}
	if !strings.Contains(buf.String(), "INFO [predict] loaded model artifact [source=embedded model=SleepCalculator") {
		t.Errorf("Expected load to be logged, got %q", buf.String())
	}

	buf.Reset()
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := File(missing).WithLogger(log).Load(); err == nil {
		t.Fatal("Expected missing file to fail")
	}
	if !strings.Contains(buf.String(), "WARN [predict] failed to read model artifact "+missing) {
		t.Errorf("Expected failure to be logged, got %q", buf.String())
	}
}
