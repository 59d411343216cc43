package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/BetterRest/internal/config"
	"github.com/yildizm/BetterRest/internal/emoji"
	"github.com/yildizm/BetterRest/internal/predict"
	"github.com/yildizm/go-termfmt"
	"gopkg.in/yaml.v3"
)

var modelWatch bool

// newModelCommand creates the model command with subcommands
func newModelCommand() *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect the sleep regression model",
		Long: `Inspect and validate the regression model used to predict sleep.

Without --model or model.path in the configuration the built-in model is used.`,
	}

	modelCmd.AddCommand(newModelShowCommand())
	modelCmd.AddCommand(newModelValidateCommand())

	return modelCmd
}

func newModelShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the active model",
		Example: `  # Show the built-in model
  betterrest model show

  # Show a model artifact as JSON
  betterrest model show --model ./sleep.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			loader := newPredictor(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			model, err := loader.Load()
			if err != nil {
				return err
			}

			return writeModel(cmd.OutOrStdout(), outputFormat(cfg), loader.Source(), model, colorEnabled(cfg, cmd.OutOrStdout()))
		},
	}
}

func writeModel(w io.Writer, format, source string, m *predict.Model, color bool) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal model to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal model to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", "text", "markdown":
	default:
		return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
	}

	opts := treeOptions(color)

	features := m.FeatureNames()
	coefficients := make([]termfmt.TreeItem, 0, len(features))
	for i, name := range features {
		coefficients = append(coefficients, termfmt.TreeItem{
			Label: fmt.Sprintf("%s: %g", name, m.Coefficients[name]),
			Last:  i == len(features)-1,
		})
	}

	items := []termfmt.TreeItem{
		{Label: "Source: " + source},
		{Label: "Version: " + m.Version},
		{Label: fmt.Sprintf("Output: %s (%s)", m.Output, m.Unit)},
		{Label: fmt.Sprintf("Intercept: %g", m.Intercept)},
		{Label: "Coefficients", Children: coefficients, Last: true},
	}

	if _, err := fmt.Fprintf(w, "%s %s\n", emoji.GetEmoji("model"), m.Name); err != nil {
		return err
	}
	if m.Description != "" {
		if _, err := fmt.Fprintf(w, "   %s\n", m.Description); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, termfmt.TreeViewWithOptions(items, opts))
	return err
}

// treeOptions follows the global emoji switch, which loadConfig also sets from output.no_emoji
func treeOptions(color bool) *termfmt.TerminalOptions {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return opts
}

func newModelValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the model artifact",
		Long: `Load the model artifact and check that it is usable.

With --watch the artifact file is re-validated every time it changes until
interrupted with Ctrl+C.`,
		Example: `  # Validate an artifact once
  betterrest model validate --model ./sleep.yaml

  # Keep validating while editing
  betterrest model validate --model ./sleep.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: runModelValidate,
	}

	cmd.Flags().BoolVar(&modelWatch, "watch", false, "re-validate whenever the artifact changes")

	return cmd
}

func runModelValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := newLogger(cfg, cmd.ErrOrStderr())
	loader := newPredictor(cfg, log)

	if !modelWatch {
		model, err := loader.Load()
		reportArtifact(out, predict.ArtifactEvent{Path: loader.Source(), Op: "load", Model: model, Err: err})
		return err
	}

	if cfg.Model.Path == "" {
		return errors.New("--watch needs a model file (use --model or model.path)")
	}

	w, err := predict.NewWatcher(config.ExpandPath(cfg.Model.Path))
	if err != nil {
		return err
	}
	w = w.WithLogger(log.WithComponent("predict"))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	reportArtifact(out, w.Check("load"))
	fmt.Fprintf(out, "%s Watching %s for changes. Press Ctrl+C to stop.\n", emoji.GetEmoji("watch"), cfg.Model.Path)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for event := range w.Events() {
		reportArtifact(out, event)
	}

	fmt.Fprintf(out, "%s Stopped watching\n", emoji.GetEmoji("door"))
	return <-errCh
}

func reportArtifact(w io.Writer, event predict.ArtifactEvent) {
	if !event.OK() {
		fmt.Fprintf(w, "%s %s (%s): %v\n", emoji.GetEmoji("error"), event.Path, event.Op, event.Err)
		return
	}
	fmt.Fprintf(w, "%s %s (%s): model %s %s is valid\n",
		emoji.GetEmoji("success"), event.Path, event.Op, event.Model.Name, event.Model.Version)
}
