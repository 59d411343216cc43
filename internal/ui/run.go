package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/logger"
	"github.com/yildizm/BetterRest/internal/predict"
)

// Options configures the interactive form
type Options struct {
	// Source names the model artifact in the status line
	Source string
	// WatchPath, when set, is re-validated whenever it changes on disk
	WatchPath string
	// Theme is one of GetAvailableThemes; empty keeps the current theme
	Theme string
	// Log must not write to the terminal; nil discards
	Log *logger.Logger
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, form *bedtime.Form, opts Options) error {
	if opts.Theme != "" && !SetThemeByName(opts.Theme) {
		return fmt.Errorf("unknown theme: %s", opts.Theme)
	}

	m := NewFormModel(form, opts.Source)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.WatchPath != "" {
		w, err := predict.NewWatcher(opts.WatchPath)
		if err != nil {
			return err
		}
		w = w.WithLogger(opts.Log.WithComponent("predict"))
		initial := w.Check("loaded")
		m.status = &initial
		m.WithArtifactEvents(w.Events())
		// a failing watcher closes Events, which the model reports
		go func() { _ = w.Run(ctx) }()
	}

	opts.Log.InfoWithFields("starting interface", []logger.Field{
		logger.F("source", opts.Source),
		logger.F("watch", opts.WatchPath),
		logger.F("theme", GetTheme().Name),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		opts.Log.Error("interface stopped: %v", err)
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
