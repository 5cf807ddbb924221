package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quip/internal/config"
	"quip/internal/journal"
	"quip/internal/logging"
)

const version = "1.0.0"

var (
	quiet       bool
	verbose     bool
	dimArg      string
	historyDir  string
	setArgs     []string
	forceOutput bool

	cfg config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&quiet, "quiet", "q", false, "prevent non-essential console output")
	pf.BoolVar(&verbose, "verbose", false, "log debug output to stderr")
	pf.StringVarP(&dimArg, "dim", "d", "", "preview dimensions as WIDTH:LINES; omit a number to remove that limit")
	pf.Lookup("dim").NoOptDefVal = ":"
	pf.StringVar(&historyDir, "history-dir", "", "override the history cache directory")

	rootCmd.Flags().StringArrayVarP(&setArgs, "set", "s", nil, "set clipboard data to the given string (repeatable)")
	rootCmd.Flags().BoolVarP(&forceOutput, "output", "O", false, "print the clipboard contents, regardless of other options")

	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "quip",
	Short: "Commandline clipboard utility & history manager",
	Long: `quip reads and writes the clipboard from the shell and keeps every value it
sets in an on-disk history cache that can be listed, previewed and recalled.

Piped input and --set values (stdin first) are written to the clipboard.
With no input, the current clipboard contents are printed.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(map[string]string{"history.dir": historyDir})
		if err != nil {
			return err
		}
		cfg = loaded
		return initLogging(cfg.Log.Level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		piped := stdinHasData()
		var buf bytes.Buffer
		if piped {
			if _, err := io.Copy(&buf, os.Stdin); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}
		for _, s := range setArgs {
			buf.WriteString(s)
		}

		if buf.Len() > 0 {
			entry, pushed, err := a.clipboard.Set(buf.Bytes())
			if err != nil {
				return err
			}
			if pushed {
				a.record(journal.Event{Action: journal.ActionPush, Entry: entry.Name(), Bytes: int64(buf.Len())})
			}
		}

		if (len(setArgs) == 0 && !piped) || forceOutput {
			data, err := a.clipboard.Get()
			if err != nil {
				return err
			}
			os.Stdout.Write(data)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quip version",
	Run: func(cmd *cobra.Command, args []string) {
		if !quiet {
			fmt.Print("quip v")
		}
		fmt.Println(version)
	},
}

func initLogging(level string) error {
	if verbose {
		level = "debug"
	}
	return logging.Init(logging.Config{Level: level, Format: "console", OutputPath: "stderr"})
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logging.L().Debug("command failed", zap.Error(err))
	}
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
