package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrar/internal/config"
)

var configSetCmd = &cobra.Command{
	Use:   "config:set <key> <value>",
	Short: "Update a setting in the config file",
	Long: `Update a single setting in the config file, preserving comments and
formatting in the rest of the file. Keys use dotted paths.

Examples:
  registrar config:set store sqlite
  registrar config:set output.format json
  registrar config:set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Reject values that would fail validation on the next load.
		switch key {
		case "store":
			if err := config.ValidateStore(value); err != nil {
				return err
			}
		case "output.format":
			if err := config.ValidateOutput(config.OutputConfig{Format: value}); err != nil {
				return err
			}
		case "logging.level":
			if err := config.ValidateLogging(config.LoggingConfig{Level: value}); err != nil {
				return err
			}
		}

		path := configFilePath()
		if err := config.SaveValue(path, key, value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s in %s\n", key, value, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configSetCmd)
}
