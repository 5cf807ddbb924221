package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quip/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// configCmd does not load the config file, so a broken one can still be
// replaced or inspected.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the quip configuration file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(config.Default().Log.Level)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or overwrite the configuration file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Save(config.Default())
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Printf("Successfully created '%s'\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(map[string]string{"history.dir": historyDir})
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(loaded, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single key in the configuration file",
	Long:  "Keys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := config.SetField(&fileCfg, args[0], args[1]); err != nil {
			return err
		}
		if _, err := config.Save(fileCfg); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}
