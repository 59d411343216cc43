package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/yildizm/BetterRest/internal/config"
	"github.com/yildizm/BetterRest/internal/emoji"
	"github.com/yildizm/BetterRest/internal/logger"
	"github.com/yildizm/BetterRest/internal/predict"
	"github.com/yildizm/BetterRest/internal/ui"
)

// loadConfig loads the effective configuration and folds in global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if modelPath != "" {
		cfg.Model.Path = modelPath
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if cfg.Output.NoEmoji && !isEmojiDisabled() {
		emoji.SetEmojiDisabled(true)
	}

	return cfg, nil
}

// newPredictor selects the configured artifact, falling back to the built-in model
func newPredictor(cfg *config.Config, log *logger.Logger) *predict.Loader {
	return predict.FromPath(config.ExpandPath(cfg.Model.Path)).WithLogger(log.WithComponent("predict"))
}

// newLogger creates the cli logger gated on the verbose setting
func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.NewWithCallback("cli", func() bool { return cfg.Log.Verbose }).WithWriter(w)
}

// outputFormat prefers the --output flag over the configured default
func outputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	return cfg.Output.DefaultFormat
}

// colorEnabled resolves color_mode against the flags and the destination
func colorEnabled(cfg *config.Config, w io.Writer) bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
