package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"quip/internal/history"
)

const defaultListCount = 10

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(showCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [COUNT]",
	Short: "Preview the most recent clipboard entries (default 10)",
	Long: `Shows a preview of recent cache entries, starting from the current one.
Unless --quiet is given, index numbers are shown before each entry.
Combine with --dim to configure how much of each entry is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := defaultListCount
		if len(args) == 1 {
			n, err := strconv.ParseUint(args[0], 10, 31)
			if err != nil {
				return fmt.Errorf("invalid list count: %q isn't a valid number", args[0])
			}
			count = int(n)
		}

		opts, err := previewOptions()
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		for i, e := range a.history.All() {
			if i >= count {
				break
			}
			if i > 0 {
				fmt.Println()
				if !quiet {
					fmt.Println()
				}
			}
			if !quiet {
				fmt.Println(entryHeader(i, e))
			}
			text, err := e.Preview(opts)
			if err != nil {
				return err
			}
			fmt.Print(text)
		}
		if a.history.Len() > 0 && count > 0 {
			fmt.Println()
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <INDEX>",
	Short: "Show a preview of the specified cache entry (0 is current, 1 is previous, etc.)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := previewOptions()
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := entryAt(a.history, args[0])
		if err != nil {
			return err
		}
		text, err := e.Preview(opts)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <NAME>",
	Short: "Print the full contents of a cache entry by its identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, ok := a.history.GetByName(args[0])
		if !ok {
			return fmt.Errorf("entry %q does not exist in the history cache", args[0])
		}
		data, err := e.Read()
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil
	},
}

// entryAt resolves an age index argument.
func entryAt(h *history.History, arg string) (history.Entry, error) {
	idx, err := strconv.ParseUint(arg, 10, 31)
	if err != nil {
		return history.Entry{}, fmt.Errorf("invalid index: %q isn't a valid number", arg)
	}
	e, ok := h.Get(int(idx))
	if !ok {
		return history.Entry{}, fmt.Errorf("index %d does not exist in the history cache", idx)
	}
	return e, nil
}

func entryHeader(i int, e history.Entry) string {
	size := "?"
	if n, err := e.Size(); err == nil {
		size = humanize.Bytes(uint64(n))
	}
	return fmt.Sprintf("[%d] %s · %s · %s:", i, e.Name(), humanize.Time(e.ModTime), size)
}
