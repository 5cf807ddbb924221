package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quip/internal/journal"
	"quip/internal/logging"
)

var (
	pruneOlderThan time.Duration
	pruneBefore    string
	pruneJournal   bool
	sizeDisk       bool
)

func init() {
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(emptyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(sizeCmd)

	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 0, "delete entries last modified longer ago than this (e.g. 72h)")
	pruneCmd.Flags().StringVar(&pruneBefore, "before", "", "delete entries last modified before this RFC3339 time")
	pruneCmd.Flags().BoolVar(&pruneJournal, "journal", false, "also forget journal events before the threshold")
	pruneCmd.MarkFlagsMutuallyExclusive("older-than", "before")
	pruneCmd.MarkFlagsOneRequired("older-than", "before")

	sizeCmd.Flags().BoolVar(&sizeDisk, "disk", false, "also print the total size of the cache on disk")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire clipboard history cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.history.DeleteAll()
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("no clipboard history cache to delete")
		}
		a.record(journal.Event{Action: journal.ActionClear, Count: count})
		if !quiet {
			fmt.Printf("Removed %s (%d filesystem entries).\n", a.history.Dir(), count)
		}
		return nil
	},
}

var emptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Empty the clipboard, keeping the history cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return a.clipboard.Clear()
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache entries older than a threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold := time.Now().Add(-pruneOlderThan)
		if pruneBefore != "" {
			t, err := time.Parse(time.RFC3339, pruneBefore)
			if err != nil {
				return fmt.Errorf("invalid --before time: %w", err)
			}
			threshold = t
		} else if pruneOlderThan < 0 {
			return fmt.Errorf("invalid --older-than: %s is negative", pruneOlderThan)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.history.DeleteOlderThan(threshold)
		if count > 0 {
			a.record(journal.Event{Action: journal.ActionPrune, Count: count})
		}
		if err != nil {
			return err
		}

		if pruneJournal && a.journal != nil {
			forgotten, err := a.journal.Forget(threshold)
			if err != nil {
				logging.L().Warn("journal prune failed", zap.Error(err))
			} else {
				logging.L().Debug("journal pruned", zap.Int("events", forgotten))
			}
		}

		if !quiet {
			fmt.Printf("Deleted %d cached clipboard entries older than %s.\n", count, humanize.Time(threshold))
		}
		return nil
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the number of entries in the history cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(a.history.Len())
		if sizeDisk {
			var total uint64
			for _, e := range a.history.All() {
				if n, err := e.Size(); err == nil {
					total += uint64(n)
				}
			}
			fmt.Println(humanize.Bytes(total))
		}
		return nil
	},
}
