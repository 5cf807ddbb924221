package cmd

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var journalLimit int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "max number of events to show")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recent history cache events",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if a.journal == nil {
			return errors.New("journal is disabled — set journal.enabled to true")
		}

		events, err := a.journal.List(journalLimit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No events yet")
			return nil
		}

		fmt.Printf("%-20s %-8s %-10s %s\n", "WHEN", "ACTION", "ENTRY", "DETAIL")
		fmt.Println("─────────────────────────────────────────────────────")
		for _, ev := range events {
			detail := ""
			switch {
			case ev.Count > 0:
				detail = fmt.Sprintf("%d entries", ev.Count)
			case ev.Entry != "":
				detail = humanize.Bytes(uint64(ev.Bytes))
			}
			fmt.Printf("%-20s %-8s %-10s %s\n",
				ev.At.Local().Format("2006-01-02 15:04:05"),
				ev.Action,
				ev.Entry,
				detail,
			)
		}
		return nil
	},
}
