package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quip/internal/journal"
)

var recallCache bool

func init() {
	rootCmd.AddCommand(recallCmd)
	rootCmd.AddCommand(cacheCmd)

	recallCmd.Flags().BoolVarP(&recallCache, "cache", "c", false, "cache the current clipboard contents before overwriting them")
}

var recallCmd = &cobra.Command{
	Use:   "recall <INDEX>",
	Short: "Recall the specified cache entry to the clipboard",
	Long: `Recalls the data at the specified cache index to the clipboard.
This overwrites the current clipboard data without adding it to the cache;
pass --cache (or enable history.autoCache) to cache it first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := entryAt(a.history, args[0])
		if err != nil {
			return err
		}
		// read before caching, which shifts every index by one
		data, err := e.Read()
		if err != nil {
			return err
		}

		if cfg.History.AutoCache || recallCache {
			if err := cacheCurrent(a); err != nil {
				return err
			}
		}

		if _, _, err := a.clipboard.Set(data); err != nil {
			return err
		}
		a.record(journal.Event{Action: journal.ActionRecall, Entry: e.Name(), Bytes: int64(len(data))})
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Copy the current clipboard contents to the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return cacheCurrent(a)
	},
}

func cacheCurrent(a *app) error {
	current, err := a.clipboard.Get()
	if err != nil {
		return err
	}
	e, err := a.history.Push(current)
	if err != nil {
		return fmt.Errorf("cache clipboard: %w", err)
	}
	a.record(journal.Event{Action: journal.ActionCache, Entry: e.Name(), Bytes: int64(len(current))})
	return nil
}
