package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/config"
	"github.com/yildizm/BetterRest/internal/ui"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputs, err := cfg.Defaults.Inputs()
	if err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere
	logWriter, closeLog, err := openLogWriter(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log := newLogger(cfg, logWriter)
	predictor := newPredictor(cfg, log)
	form := bedtime.NewForm(predictor,
		bedtime.WithInputs(inputs),
		bedtime.WithTimeLayout(cfg.Output.TimeFormat),
		bedtime.WithLogger(log.WithComponent("form")),
	)

	opts := ui.Options{
		Source: predictor.Source(),
		Theme:  cfg.Output.Theme,
		Log:    log.WithComponent("ui"),
	}
	if cfg.Model.Watch && cfg.Model.Path != "" {
		opts.WatchPath = config.ExpandPath(cfg.Model.Path)
	}

	log.Info("starting interactive form with model %s", predictor.Source())

	return ui.Run(cmd.Context(), form, opts)
}

func openLogWriter(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Log.File == "" {
		return io.Discard, func() {}, nil
	}

	path := config.ExpandPath(cfg.Log.File)
	// #nosec G304 - log path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}, nil
}
