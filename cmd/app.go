package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"quip/internal/clipboard"
	"quip/internal/history"
	"quip/internal/journal"
	"quip/internal/logging"
	"quip/internal/preview"
)

type app struct {
	history   *history.History
	clipboard *clipboard.Clipboard
	journal   *journal.Store
}

func openApp() (*app, error) {
	backend := clipboard.SystemBackend()
	// without a native clipboard the history is the clipboard, so it is always loaded
	initialize := cfg.History.Enabled || backend == nil

	h, err := history.New(cfg.History.Dir, initialize,
		history.WithSymlinks(cfg.History.FollowSymlinks),
		history.WithLogger(logging.Named("history")),
	)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	a := &app{
		history: h,
		clipboard: clipboard.New(h, cfg.History.Enabled,
			clipboard.WithBackend(backend),
			clipboard.WithLogger(logging.Named("clipboard")),
		),
	}

	if cfg.Journal.Enabled {
		st, err := journal.New(cfg.Journal.Path)
		if err != nil {
			logging.L().Warn("journal unavailable", zap.String("path", cfg.Journal.Path), zap.Error(err))
		} else {
			a.journal = st
		}
	}
	return a, nil
}

func (a *app) Close() {
	if a.journal != nil {
		a.journal.Close()
	}
}

// record writes ev to the journal. Journal failures never fail a command.
func (a *app) record(ev journal.Event) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.Record(ev); err != nil {
		logging.L().Warn("journal record failed", zap.String("action", string(ev.Action)), zap.Error(err))
	}
}

// previewOptions combines configured dimensions with --dim and --quiet.
func previewOptions() (preview.Options, error) {
	opts := cfg.PreviewOptions()
	if rootCmd.PersistentFlags().Changed("dim") {
		var err error
		if opts, err = preview.ParseDimensions(dimArg, opts); err != nil {
			return opts, err
		}
	}
	opts.Ellipsis = !quiet
	return opts, nil
}
