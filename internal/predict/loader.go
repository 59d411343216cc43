package predict

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/BetterRest/internal/logger"
)

// EmbeddedSource is the source name reported for the built-in artifact
const EmbeddedSource = "embedded"

//go:embed models/sleep_calculator.yaml
var embeddedModel []byte

// Loader reads a model artifact from its source.
//
// A Loader used as a Predictor initialises the model on every call, so a
// missing or corrupt artifact is reported at prediction time.
type Loader struct {
	source string
	read   func() ([]byte, error)
	log    *logger.Logger
}

// Embedded returns a loader for the artifact compiled into the binary
func Embedded() *Loader {
	return &Loader{
		source: EmbeddedSource,
		read: func() ([]byte, error) {
			return embeddedModel, nil
		},
	}
}

// File returns a loader that reads the artifact at path
func File(path string) *Loader {
	return &Loader{
		source: path,
		read: func() ([]byte, error) {
			if err := validateModelPath(path); err != nil {
				return nil, err
			}
			// #nosec G304 - path is validated by validateModelPath
			return os.ReadFile(path)
		},
	}
}

// FromPath returns File(path), or Embedded() when path is empty
func FromPath(path string) *Loader {
	if strings.TrimSpace(path) == "" {
		return Embedded()
	}
	return File(path)
}

// WithLogger returns a copy that reports loads to log
func (l *Loader) WithLogger(log *logger.Logger) *Loader {
	c := *l
	c.log = log
	return &c
}

// Source names where the artifact comes from
func (l *Loader) Source() string {
	return l.source
}

// Load reads, parses and validates the artifact
func (l *Loader) Load() (*Model, error) {
	data, err := l.read()
	if err != nil {
		l.log.Warn("failed to read model artifact %s: %v", l.source, err)
		return nil, NewLoadError(l.source, "failed to read model artifact", err)
	}

	model, err := ParseModel(data)
	if err != nil {
		l.log.Warn("invalid model artifact %s: %v", l.source, err)
		return nil, NewLoadError(l.source, "invalid model artifact", err)
	}

	l.log.InfoWithFields("loaded model artifact", []logger.Field{
		logger.F("source", l.source),
		logger.F("model", model.Name),
		logger.F("version", model.Version),
	})
	return model, nil
}

// PredictSleep loads the model and evaluates it
func (l *Loader) PredictSleep(wake, estimatedSleep, coffee float64) (float64, error) {
	model, err := l.Load()
	if err != nil {
		return 0, err
	}

	hours, err := model.PredictSleep(wake, estimatedSleep, coffee)
	if err != nil {
		if pe, ok := err.(*Error); ok {
			pe.Source = l.source
		}
		return 0, err
	}

	return hours, nil
}

// validateModelPath rejects paths that can't be a model artifact.
// The path is always user supplied, so relative parents are allowed.
func validateModelPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty model path")
	}

	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return fmt.Errorf("model artifact must have .yaml, .yml or .json extension")
	}

	return nil
}
